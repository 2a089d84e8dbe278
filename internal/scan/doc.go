// Package scan is the reference host for package vtab: it binds, opens and
// drains whole files, handing each produced chunk to a visit callback.
//
// Files are scanned one after another so output order matches argument
// order. Count is the exception: it scans distinct files concurrently, one
// handle per file.
package scan
