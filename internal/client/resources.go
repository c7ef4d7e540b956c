package client

import "github.com/awncorp/api-basecamp/pkg/basecamp"

// ResourceNames enumerates the known top-level resource names exposed as
// accessor sugar. Each accessor is purely Resource("<name>", args...).
var ResourceNames = []string{
	"projects",
	"messages",
	"todos",
	"people",
	"events",
	"documents",
	"uploads",
	"comments",
	"attachments",
	"calendars",
	"calendar_events",
	"groups",
	"stars",
	"topics",
	"accesses",
	"project_templates",
	"todo_lists",
}

func (c *Client) named(name string, args []string) basecamp.Client {
	return c.Resource(append([]string{name}, args...)...)
}

// Projects implements basecamp.ResourceAccessors.Projects.
func (c *Client) Projects(args ...string) basecamp.Client {
	return c.named("projects", args)
}

// Messages implements basecamp.ResourceAccessors.Messages.
func (c *Client) Messages(args ...string) basecamp.Client {
	return c.named("messages", args)
}

// Todos implements basecamp.ResourceAccessors.Todos.
func (c *Client) Todos(args ...string) basecamp.Client {
	return c.named("todos", args)
}

// People implements basecamp.ResourceAccessors.People.
func (c *Client) People(args ...string) basecamp.Client {
	return c.named("people", args)
}

// Events implements basecamp.ResourceAccessors.Events.
func (c *Client) Events(args ...string) basecamp.Client {
	return c.named("events", args)
}

// Documents implements basecamp.ResourceAccessors.Documents.
func (c *Client) Documents(args ...string) basecamp.Client {
	return c.named("documents", args)
}

// Uploads implements basecamp.ResourceAccessors.Uploads.
func (c *Client) Uploads(args ...string) basecamp.Client {
	return c.named("uploads", args)
}

// Comments implements basecamp.ResourceAccessors.Comments.
func (c *Client) Comments(args ...string) basecamp.Client {
	return c.named("comments", args)
}

// Attachments implements basecamp.ResourceAccessors.Attachments.
func (c *Client) Attachments(args ...string) basecamp.Client {
	return c.named("attachments", args)
}

// Calendars implements basecamp.ResourceAccessors.Calendars.
func (c *Client) Calendars(args ...string) basecamp.Client {
	return c.named("calendars", args)
}

// CalendarEvents implements basecamp.ResourceAccessors.CalendarEvents.
func (c *Client) CalendarEvents(args ...string) basecamp.Client {
	return c.named("calendar_events", args)
}

// Groups implements basecamp.ResourceAccessors.Groups.
func (c *Client) Groups(args ...string) basecamp.Client {
	return c.named("groups", args)
}

// Stars implements basecamp.ResourceAccessors.Stars.
func (c *Client) Stars(args ...string) basecamp.Client {
	return c.named("stars", args)
}

// Topics implements basecamp.ResourceAccessors.Topics.
func (c *Client) Topics(args ...string) basecamp.Client {
	return c.named("topics", args)
}

// Accesses implements basecamp.ResourceAccessors.Accesses.
func (c *Client) Accesses(args ...string) basecamp.Client {
	return c.named("accesses", args)
}

// ProjectTemplates implements basecamp.ResourceAccessors.ProjectTemplates.
func (c *Client) ProjectTemplates(args ...string) basecamp.Client {
	return c.named("project_templates", args)
}

// TodoLists implements basecamp.ResourceAccessors.TodoLists.
func (c *Client) TodoLists(args ...string) basecamp.Client {
	return c.named("todo_lists", args)
}
