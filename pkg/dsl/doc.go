/*
Package dsl provides a fluent Go API for programmatically constructing
FSM models.

It lets developers define state machines using a type-safe builder pattern
instead of relying on external YAML or JSON files. This is particularly
useful for embedding models in tests and for leveraging IDE
autocompletion/type-checking.

Example usage:

	b := dsl.New("Door")

	b.From("closed").On("open").Do("unlock").To("opened")
	b.From("opened").On("close").Do("latch").To("closed")
	b.From("opened").On("close").When("alarm armed").Do("latch_and_arm").To("closed")

	model, err := b.Initial("closed").Build()
	// model is validated and ready for verify.Run, simulate.Run or
	// codegen.Generate.
*/
package dsl
