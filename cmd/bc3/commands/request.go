package commands

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/awncorp/api-basecamp/pkg/basecamp"
)

// NewGetCommand creates the get command.
func NewGetCommand() *cobra.Command {
	return newActionCommand("get", http.MethodGet, "Fetch a resource",
		"Issue a GET against the resource addressed by the given path segments")
}

// NewPostCommand creates the post command.
func NewPostCommand() *cobra.Command {
	return newActionCommand("post", http.MethodPost, "Create a resource",
		"Issue a POST against the resource addressed by the given path segments")
}

// NewPutCommand creates the put command.
func NewPutCommand() *cobra.Command {
	return newActionCommand("put", http.MethodPut, "Update a resource",
		"Issue a PUT against the resource addressed by the given path segments")
}

// NewDeleteCommand creates the delete command.
func NewDeleteCommand() *cobra.Command {
	return newActionCommand("delete", http.MethodDelete, "Delete a resource",
		"Issue a DELETE against the resource addressed by the given path segments")
}

// NewRequestCommand creates the generic request command for any verb,
// including HEAD, PATCH, and OPTIONS.
func NewRequestCommand() *cobra.Command {
	var (
		queryPairs []string
		data       string
	)

	cmd := &cobra.Command{
		Use:   "request VERB SEGMENT...",
		Short: "Issue an arbitrary verb against a resource",
		Long:  "Issue any HTTP verb against the resource addressed by the given path segments",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAction(strings.ToUpper(args[0]), args[1:], queryPairs, data)
		},
	}

	addActionFlags(cmd, &queryPairs, &data)

	return cmd
}

func newActionCommand(use, verb, short, long string) *cobra.Command {
	var (
		queryPairs []string
		data       string
	)

	cmd := &cobra.Command{
		Use:   use + " SEGMENT...",
		Short: short,
		Long:  long,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAction(verb, args, queryPairs, data)
		},
	}

	addActionFlags(cmd, &queryPairs, &data)

	return cmd
}

func addActionFlags(cmd *cobra.Command, queryPairs *[]string, data *string) {
	cmd.Flags().StringArrayVarP(queryPairs, "query", "q", nil, "query parameter as key=value (repeatable)")
	cmd.Flags().StringVarP(data, "data", "d", "", "JSON body, or @file to read from a file")
}

func runAction(verb string, segments, queryPairs []string, data string) error {
	client, err := createClient()
	if err != nil {
		return err
	}

	query, err := parseQueryFlags(queryPairs)
	if err != nil {
		return err
	}

	payload, err := parseDataFlag(data)
	if err != nil {
		return err
	}

	var opts *basecamp.RequestOptions
	if query != nil || payload != nil {
		opts = &basecamp.RequestOptions{Query: query, Data: payload}
	}

	result, err := client.Resource(segments...).Do(context.Background(), verb, opts)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}

	if !result.Succeeded() {
		fmt.Fprintf(os.Stderr, "Request failed with status %d\n", result.Status)
	}

	return renderResult(result)
}
