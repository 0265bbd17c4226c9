// Package mocks provides centralized mock implementations for testing.
//
// This package contains mock implementations of interfaces used throughout the
// application, facilitating consistent and DRY testing across the codebase.
// Instead of defining inline mocks in individual test files, these standardized
// mock implementations can be reused.
//
// Each mock exposes function fields (XxxFn) for customizable behavior and
// default-value fields used when no function is provided:
//
//	mockJWT := &mocks.MockJWTService{
//	    GenerateTokenFn: func(ctx context.Context, userID uuid.UUID, username string) (string, error) {
//	        return "mocked-token", nil
//	    },
//	}
//
// When adding a new mock to this package:
//  1. Create a new file named after the interface being mocked
//  2. Implement the mock struct with function fields for each interface method
//  3. Document any helper methods or special functionality
package mocks
