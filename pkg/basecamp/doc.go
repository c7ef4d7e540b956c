// Package basecamp provides types, interfaces, and helpers for working with
// the Basecamp API as a generic, resource-oriented thin client.
//
// # Overview
//
// The basecamp package defines the Locator value (a composable API URL), the
// Config carried by every client, the Client interface for resource-scoped
// clients, and the prepare-hook building blocks applied to every outgoing
// transaction. A concrete implementation is provided by the bcclient
// package, which wires configuration, transport, and retry policy. Most
// consumers should import bcclient to construct a client and then compose
// resources through the Client interface exposed here.
//
// Getting a client
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
//	  cli, err := bcclient.New(&basecamp.Config{
//	    Account:  "605816632",
//	    Username: "me@example.com",
//	    Password: "secret",
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  // GET /605816632/api/v1/projects/605816632/todos.json
//	  result, err := cli.Projects("605816632").Todos().Fetch(ctx, nil)
//	  if err != nil { log.Fatal(err) }
//	  _ = result
//	}
//
// # Resource composition
//
// Every accessor call returns a new Client bound to an extended Locator;
// the receiver is never mutated. Unknown or future resource names compose
// through Resource directly:
//
//	cli.Resource("projects", "605816632", "todos")
//
// is equivalent to cli.Projects("605816632").Todos() and to
// cli.Resource("projects").Resource("605816632").Resource("todos").
//
// # Errors and retry
//
// Transport failures and 4xx/5xx responses are retried up to Config.Retries
// with a fixed delay. When retries are exhausted, fatal mode surfaces an
// *HTTPError carrying status, headers, and body; otherwise the failed
// Result is returned as an ordinary value. Helpers such as IsNotFound and
// IsUnauthorized make it easy to branch on common cases.
//
// # Prepare hooks
//
// Every transaction passes through a PrepareChain before send. The default
// chain enforces the ".json" path suffix and JSON headers; applications can
// extend the chain with custom hooks via the transport options.
package basecamp
