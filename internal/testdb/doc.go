// Package testdb provides migrated databases for tests.
//
// By default every call to Open yields a fresh SQLite database in the test's
// temporary directory, so tests can run in parallel without sharing state.
// Setting TASKBOARD_TEST_DATABASE_URL runs the same tests against PostgreSQL
// instead; each test then wraps its work in WithTx or relies on the table
// cleanup registered by Open.
//
//	func TestSomething(t *testing.T) {
//	    db := testdb.Open(t)
//	    users := sqlstore.NewUserStore(db, nil)
//	    ...
//	}
package testdb
