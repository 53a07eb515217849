// Package seeder generates randomized rows for a described table and inserts
// them through a pluggable backend.
//
// A Table is an ordered, validated set of columns, each paired with a
// Generator. A Mock binds a table to a repetition count and renders a single
// multi-row INSERT on demand, regenerating every value each time:
//
//	users := seeder.MustDefine("auth", "users", 5,
//		seeder.Col("id", fake.UUID),
//		seeder.Col("username", fake.FirstName),
//		seeder.Col("email", fake.Email),
//	)
//	n, err := seeder.Seed(ctx, seeder.Blocking(db), users)
//
// Executors hide the difference between a blocking connection and an
// asynchronous pool; Run seeds several mocks in order and stops at the first
// failure.
package seeder
