// Package mock provides test double implementations of AI service interfaces.
//
// MockRefiner implements ai.TagRefiner for unit tests so tagging can be
// exercised without an external model and with controlled, deterministic
// behavior.
//
// # Usage in Tests
//
//	// Default behavior returns the input tags unchanged
//	refiner := mock.NewMockRefiner()
//
//	// Custom behavior injection
//	refiner := mock.NewMockRefiner().
//	    WithRefineFunc(func(ctx context.Context, name, description string, tags []string) ([]string, error) {
//	        return []string{"water", "made-up"}, nil
//	    })
//
//	// Check call counts
//	count := refiner.CallCount()
package mock
