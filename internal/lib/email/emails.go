package email

import (
	"context"
	"net/url"
	"strings"
)

// SendMemoryPublishedEmail tells the owner that one of their memories is now
// visible to anyone with its link.
func (c *Client) SendMemoryPublishedEmail(ctx context.Context, to, firstName, memoryID, excerpt string) error {
	data := map[string]string{
		"UserFirstName": firstName,
		"Excerpt":       excerpt,
		"MemoryURL":     c.memoryURL(memoryID),
	}

	return c.SendEmail(
		ctx,
		to,
		"Your memory is now public",
		TemplateMemoryPublished,
		data,
	)
}

// memoryURL is empty when no application URL is configured.
func (c *Client) memoryURL(memoryID string) string {
	if c.appBaseURL == "" {
		return ""
	}
	return strings.TrimRight(c.appBaseURL, "/") + "/memories/" + url.PathEscape(memoryID)
}
