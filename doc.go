/*
Package hashtables provides interchangeable uint64 to uint64 hash tables built
against one shared contract, Table.

Two tables are implemented by hand and two reference adapters wrap existing
maps so that every implementation can be checked against the others:

  - Chaining: separate chaining, one slice of entries per bucket
  - Open: open addressing with linear probing and tombstones
  - Builtin: the Go map
  - Swiss: github.com/cockroachdb/swiss

Basic usage:

	import "github.com/theflywheel/hashtables"

	// Create a table sized for 1024 keys
	t := hashtables.NewOpen(1024)

	// Insert data
	if _, _, err := t.Insert(12345, 67890); err != nil {
		log.Fatal(err)
	}

	// Retrieve data
	if v := t.Lookup(12345); v != nil {
		fmt.Println("Value:", *v)

		// Write through the returned reference
		*v = 1
	}

	// Copy every entry into another implementation
	m := hashtables.NewBuiltin(t.Len())
	if err := t.Rehash(m); err != nil {
		log.Fatal(err)
	}

Features:

  - Fixed capacity: the bucket or slot count is the smallest power of two
    not below the size hint and never changes
  - Pluggable hash function (xxHash64 by default, xxh3 and Fx also provided)
  - Lookup returns a pointer into the table, valid until the next Insert or
    Erase on the same table
  - Rehash copies between any two implementations without touching the source

Implementation Details:

Chaining appends new keys at the tail of their bucket and scans from the
tail, so the newest entry of a bucket is found first. Erase removes the entry
while keeping the order of the rest. Inserting more keys than the size hint
only makes chains longer.

Open stores keys in a flat slot array. A slot is Empty, Occupied or a
Tombstone. Erase turns an Occupied slot into a Tombstone, never back into
Empty, so lookups keep probing past erased keys. Insert reuses the first
Tombstone on the probe path once it knows the key is not stored further
along. When every slot is Occupied, Insert returns ErrCapacityExceeded.

None of the tables are safe for concurrent use.
*/
package hashtables
