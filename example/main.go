package main

import (
	"fmt"
	"log"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/theflywheel/probetable"
)

func main() {
	// Start deliberately small so the table has to grow
	t := probetable.New[int](31, 5)

	fmt.Println("Table created with", t.Capacity(), "slots")

	// Insert some data
	for i := 0; i < 10; i++ {
		if err := t.Set(strconv.Itoa(i), i*100); err != nil {
			log.Fatalf("Failed to insert key %d: %v", i, err)
		}
	}

	fmt.Printf("Inserted %d keys, capacity is now %d\n", t.Len(), t.Capacity())

	// Retrieve and display some values
	for i := 0; i < 15; i += 2 {
		value, err := t.Get(strconv.Itoa(i))
		switch {
		case errors.Is(err, probetable.ErrKeyNotFound):
			fmt.Printf("Key %d not found\n", i)
		case err != nil:
			log.Fatalf("Failed to get key %d: %v", i, err)
		default:
			fmt.Printf("Key %d => Value %d\n", i, value)
		}
	}

	// Update a value
	if err := t.Set("2", 999); err != nil {
		log.Fatalf("Failed to update key: %v", err)
	}

	// Verify the update
	if value, err := t.Get("2"); err == nil {
		fmt.Printf("Updated key 2 => Value %d\n", value)
	}

	// Delete the first half
	for i := 0; i < 5; i++ {
		if err := t.Delete(strconv.Itoa(i)); err != nil {
			log.Fatalf("Failed to delete key %d: %v", i, err)
		}
	}

	fmt.Printf("%d keys left\n", t.Len())
	fmt.Println("Statistics:", t.Statistics())
	fmt.Println("Example completed successfully")
}
