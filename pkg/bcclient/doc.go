// Package bcclient provides the primary entry point for constructing a
// Basecamp API client that implements the basecamp.Client interface.
//
// It layers configuration validation, defaulting, base URL normalization,
// and the retrying HTTP transport on top of the types defined in the
// basecamp package. Most applications should import bcclient to build a
// client, then compose resources through the returned basecamp.Client, for
// example Projects(), Todos(), Messages(), or Resource() for anything else.
//
// Quick start
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/awncorp/api-basecamp/pkg/basecamp"
//	  "github.com/awncorp/api-basecamp/pkg/bcclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//
//	  cli, err := bcclient.New(&basecamp.Config{
//	    Account:  "605816632",
//	    Username: "user",
//	    Password: "pass",
//	    Retries:  2,
//	    Fatal:    true,
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  result, err := cli.Projects().Fetch(ctx, nil)
//	  if err != nil { log.Fatal(err) }
//	  _ = result
//	}
//
// The convenience constructor NewWithCredentials wraps New for the common
// case of the three required fields with all defaults.
package bcclient
