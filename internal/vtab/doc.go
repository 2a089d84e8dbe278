// Package vtab exposes a FASTQ file as a pull-based table function.
//
// A host drives one scan through three calls:
//
//	schema, bd, err := vtab.Bind(params)   // validate args, fix the schema
//	h, err := vtab.Init(bd)                // open the file once
//	for {
//		n, err := vtab.Produce(h, chunk)   // fill up to chunk.Capacity() rows
//		if err != nil || n == 0 { break }
//	}
//	h.Close()
//
// Produce may be called from any goroutine; calls on one Handle serialize on
// its mutex and the source is read strictly in order. Once a call returns 0
// every later call returns 0 without touching the source.
package vtab
