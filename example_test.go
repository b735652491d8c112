package openmht_test

import (
	"fmt"
	"log"

	openmht "github.com/openmht/openmht-go"
)

func Example() {
	frames := openmht.Frames{
		{{0, 0}},
		{{0.1, 0.1}},
		{{0.2, 0.2}},
	}

	mht, err := openmht.New(frames, openmht.DefaultParams())
	if err != nil {
		log.Fatal(err)
	}
	tracks, err := mht.Run()
	if err != nil {
		log.Fatal(err)
	}

	for i, track := range tracks {
		fmt.Printf("track %d:", i)
		for _, c := range track {
			if c == nil {
				fmt.Print(" -")
				continue
			}
			fmt.Printf(" (%g,%g)", c[0], c[1])
		}
		fmt.Println()
	}
	// Output:
	// track 0: (0,0) (0.1,0.1) (0.2,0.2)
}
