// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package headerdb stores validated block headers for a simplified payment
verification client.

A HeaderDB accepts a header when it meets the target claimed by its bits and
its parent is already stored, with the exception of the first header which
anchors the store.  Every stored header carries its height above that anchor
and the cumulative work of its branch, and the header with the most work is
the tip.  Merkle blocks are only trusted once their header is stored.

Records live in an Engine.  Two are provided, one on goleveldb and one on
pebble, and either can run on disk or in memory:

	engine, err := headerdb.Open(headerdb.TypeLevelDB, "/path/to/headers")
	if err != nil {
		// Handle error.
	}
	db := headerdb.New(engine, chaincfg.MainNetParams.PowLimit)
	defer db.Close()
*/
package headerdb
