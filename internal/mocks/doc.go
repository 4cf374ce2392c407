// Package mocks provides centralized mock implementations for testing.
//
// Store mocks are built on testify's mock.Mock so tests can set expectations
// with On(...).Return(...) and verify them with AssertExpectations. The
// function-field mocks (MockJWTService, MockPasswordHasher) suit tests that
// only need a canned answer.
//
// Usage:
//
//	import "github.com/phrazzld/taskboard-api/internal/mocks"
//
//	func TestSomething(t *testing.T) {
//	    users := new(mocks.TestifyMockUserStore)
//	    users.On("GetByID", mock.Anything, userID).Return(user, nil)
//
//	    jwtSvc := &mocks.MockJWTService{Token: "mocked-token"}
//
//	    // Use the mocks in your test...
//	    users.AssertExpectations(t)
//	}
package mocks
