package signal_test

import (
	"fmt"

	"github.com/joshuapare/enginekit/signal"
)

func ExampleSignal() {
	resized := signal.New[[2]int]()

	resized.Connect(func(sz [2]int) { fmt.Println("layout", sz[0], sz[1]) })
	resized.Connect(func(sz [2]int) { fmt.Println("viewport", sz[0], sz[1]) })
	resized.ConnectOnce(func([2]int) { fmt.Println("first resize") })

	resized.Emit([2]int{800, 600})
	resized.Emit([2]int{1024, 768})
	// Output:
	// first resize
	// viewport 800 600
	// layout 800 600
	// viewport 1024 768
	// layout 1024 768
}
