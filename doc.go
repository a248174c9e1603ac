// Package spellcsv converts large, fixed-schema, semicolon-delimited CSV
// dumps of labor-market spell records into compact, strongly-typed columnar
// Parquet streams.
//
// The input is a set of yearly gzip-compressed files
// (mon_ew_xt_uni_bus_00.csv.gz ... mon_ew_xt_uni_bus_14.csv.gz plus the
// combined mon_ew_xt_uni_bus_1516.csv.gz) whose column names are listed in a
// sidecar mon_ew_xt_uni_bus.cols.txt. Lines are plain ASCII, fields are
// separated by ';' and lines are terminated by '\n'; there is no quoting or
// escaping, so the parser works directly on raw bytes.
//
// # Parsing model
//
// Each column of the schema is bound to an Accumulator, one of a closed set
// of behaviors: skip the field, collect its decoded value into a
// deduplicating set, or hand the value to a caller-supplied conversion
// callback. The line driver applies the accumulators left to right and stops
// at the first malformed byte, reporting its exact 1-based position and the
// failing field. Malformed lines never abort a file run; they are appended
// to a FileErrorLog which can render a human-readable report with a caret
// pointing at the offending byte:
//
//	bad;bad line
//	    ^
//	line 99, field 2, byte 5
//
// # Typical first pass
//
//	set := spellcsv.NewUintSet()
//	dates := spellcsv.NewDateSet()
//	accs, err := spellcsv.ResolveColumns(header, []spellcsv.ColumnSpec{
//	    {Name: "persnr", Accumulator: spellcsv.CollectUint(set)},
//	    {Name: "begepi", Accumulator: spellcsv.CollectDate(dates, false)},
//	    {Name: "endepi", Accumulator: spellcsv.CollectDate(dates, false)},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	errLog, err := spellcsv.ProcessLines(ctx, reader, spellcsv.StreamConfig{
//	    Filename:     "mon_ew_xt_uni_bus_00.csv.gz",
//	    Accumulators: accs,
//	})
//
// After the first pass the observed value ranges drive the selection of the
// narrowest on-disk integer widths (SelectIntWidth), identifiers are remapped
// to dense positive integers through an AutoIndex, and a second pass writes
// the typed columns to Parquet via ColumnWriter.
//
// # State carried across files
//
// AutoIndex and IDCounter are the only state shared across a multi-file run.
// Both are plain mutable values owned by the caller and passed explicitly
// into each file's processing call; their first-seen assignment order is a
// function of the traversal order alone, so runs over the same files in the
// same order are reproducible. Snapshots of both can be persisted to a
// SQLite database between runs with SaveSnapshot and restored with
// LoadAutoIndex and LoadIDCounter.
package spellcsv
