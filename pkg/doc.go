// Package pkg provides the core libraries for looptrace.
//
// # Overview
//
// Looptrace reads a rectangular grid of pipe tiles, follows the single closed
// loop that passes through the start tile S and answers two questions: how
// many steps away is the loop tile farthest from S, and how many tiles does
// the loop enclose. The pkg directory is organized into three areas:
//
//  1. Domain logic: [grid], [loop], [interior]
//  2. Output: [render], [render/nodelink], [io]
//  3. Infrastructure: [pipeline], [cache], [history], [server], [config]
//
// # Architecture
//
// The typical data flow:
//
//	grid text
//	    ↓
//	[grid] package (parse tiles, locate S)
//	    ↓
//	[loop] package (resolve S, walk the loop, label distances)
//	    ↓
//	[interior] package (row parity scan over the labeled grid)
//	    ↓
//	[render] / [io] (text, DOT, SVG, JSON snapshot)
//
// # Quick Start
//
//	g, err := grid.ParseString(input)
//	if err != nil {
//	    return err
//	}
//	l, err := loop.Walk(g)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(l.HalfLength(), interior.Count(g))
//
// [pipeline] wraps these steps with caching, history records and rendering,
// and is shared by the CLI and the HTTP API.
//
// # Testing
//
//	go test ./pkg/...                    # All tests
//	go test -run Example ./pkg/...       # Examples only
//	go test -tags integration ./pkg/...  # Include Redis, MongoDB and Postgres tests
//
// [grid]: https://pkg.go.dev/github.com/matzehuels/looptrace/pkg/grid
// [loop]: https://pkg.go.dev/github.com/matzehuels/looptrace/pkg/loop
// [interior]: https://pkg.go.dev/github.com/matzehuels/looptrace/pkg/interior
// [render]: https://pkg.go.dev/github.com/matzehuels/looptrace/pkg/render
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/looptrace/pkg/render/nodelink
// [io]: https://pkg.go.dev/github.com/matzehuels/looptrace/pkg/io
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/looptrace/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/looptrace/pkg/cache
// [history]: https://pkg.go.dev/github.com/matzehuels/looptrace/pkg/history
// [server]: https://pkg.go.dev/github.com/matzehuels/looptrace/pkg/server
// [config]: https://pkg.go.dev/github.com/matzehuels/looptrace/pkg/config
package pkg
