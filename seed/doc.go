// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package seed loads YAML fixtures of users and subjects into the store.

	f, err := seed.Load("demo")          // embedded demo.yaml
	f, err := seed.Load("fixtures.yaml") // or a file
	res, err := seed.Apply(ctx, s, f)

The demo set holds four students, four lecturers with the admin role,
and a "test" subject with three questions per tier whose answer is
always A. Re-applying fixtures is safe: users are inserted only when
missing and subjects are replaced wholesale.
*/
package seed
