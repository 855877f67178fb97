package main

import (
	"fmt"
	"log"

	"github.com/theflywheel/hashtables"
)

func main() {
	// Create a table for a handful of keys
	t := hashtables.NewOpen(16, hashtables.WithHashFunc(hashtables.XXH3))

	fmt.Printf("Open table created with %d slots\n", t.Cap())

	// Insert some data
	for i := uint64(0); i < 10; i++ {
		if _, _, err := t.Insert(i, i*100); err != nil {
			log.Fatalf("Failed to insert key %d: %v", i, err)
		}
	}

	fmt.Println("Inserted 10 key-value pairs")

	// Retrieve and display some values
	for i := uint64(0); i < 15; i += 2 {
		if v := t.Lookup(i); v != nil {
			fmt.Printf("Key %d => Value %d\n", i, *v)
		} else {
			fmt.Printf("Key %d not found\n", i)
		}
	}

	// Update a value
	old, replaced, err := t.Insert(2, 999)
	if err != nil {
		log.Fatalf("Failed to update key: %v", err)
	}
	fmt.Printf("Updated key 2 (replaced=%v, old=%d)\n", replaced, old)

	// Update in place through the lookup reference
	if v := t.Lookup(4); v != nil {
		*v = 4444
	}

	// Erase leaves a tombstone behind
	t.Erase(6)
	stats := t.Stats()
	fmt.Printf("Live %d, tombstones %d, empty %d\n", stats.Live, stats.Tombstones, stats.Empty)

	// Move everything into a chaining table
	c := hashtables.NewChaining(t.Len())
	if err := t.Rehash(c); err != nil {
		log.Fatalf("Failed to rehash: %v", err)
	}

	for _, k := range []uint64{2, 4, 6} {
		if v := c.Lookup(k); v != nil {
			fmt.Printf("Chaining key %d => Value %d\n", k, *v)
		} else {
			fmt.Printf("Chaining key %d not found\n", k)
		}
	}

	// A full open table reports an error instead of probing forever
	small := hashtables.NewOpen(2)
	for i := uint64(0); i < 3; i++ {
		if _, _, err := small.Insert(i, i); err != nil {
			fmt.Printf("Insert %d: %v\n", i, err)
		}
	}

	fmt.Println("Example completed successfully")
}
