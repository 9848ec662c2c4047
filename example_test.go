package autostate_test

import (
	"context"
	"fmt"
	"log"

	"github.com/autostate/autostate"
	"github.com/autostate/autostate/pkg/adapters/memory"
	"github.com/autostate/autostate/pkg/dsl"
)

// ExampleNew demonstrates verifying and replaying a model built in code.
// Models constructed with the dsl builder are seeded straight into the
// store; no scenario parser is needed for that path.
func ExampleNew() {
	ctx := context.Background()

	b := dsl.New("Door")
	b.From("closed").On("open").Do("unlock").To("opened")
	b.From("opened").On("close").Do("latch").To("closed")

	model, err := b.Initial("closed").Build()
	if err != nil {
		log.Fatal(err)
	}

	store := memory.NewStore()
	if err := store.Put(ctx, model); err != nil {
		log.Fatal(err)
	}

	service := autostate.New(store)

	result, err := service.Verify(ctx, model.ID)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("deterministic: %v\n", result.IsDeterministic)

	trace, err := service.Simulate(ctx, model.ID, "", []string{"open", "close"})
	if err != nil {
		log.Fatal(err)
	}
	for _, step := range trace {
		fmt.Printf("%s --%s--> %s\n", step.CurrentState, step.Event, step.NextState)
	}
	// Output:
	// deterministic: true
	// closed --open--> opened
	// opened --close--> closed
}
