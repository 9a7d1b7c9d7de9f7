// Package racegraph drives a single racegraph run.
//
// A run first checks that every driver folder exists. If any is missing the
// folders are created, instructions are printed and the run ends without
// touching any data. Otherwise each driver's exports are loaded, cleaned and
// charted one file at a time, and every file is deleted once it has been
// handled, whether or not a chart came out of it.
package racegraph
