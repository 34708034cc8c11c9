// Package client is the Confluence REST transport. It authenticates with
// basic auth from a credentials file or environment, retries rate limited
// and 5xx responses, and exposes the content operations the rest of the
// module composes: pages, search, comments, attachments, and page
// reference resolution. Bodies cross this boundary in storage format only;
// markdown conversion happens in the layers above.
package client
