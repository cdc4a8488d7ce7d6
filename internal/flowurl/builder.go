// Package flowurl builds frame navigation URLs from client, flow, and
// variant labels.
package flowurl

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/flowframe/embed/internal/version"
)

// EmbedParam marks a flow render as embedded and carries the library version.
const EmbedParam = "ff-embed"

// Build assembles the frame navigation target:
//
//	<base>/to/<client>/<flow>[/<variant>]?<params>&ff-embed=<version>
//
// base is the flow host origin. variant may be empty. params may be nil;
// caller-supplied parameters are preserved, and the embed marker is always
// appended.
func Build(base, client, flow, variant string, params url.Values) (string, error) {
	if client == "" {
		return "", fmt.Errorf("flowurl: client label required")
	}
	if flow == "" {
		return "", fmt.Errorf("flowurl: flow label required")
	}

	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("flowurl: invalid base %q: %w", base, err)
	}

	segments := []string{"to", client, flow}
	if variant != "" {
		segments = append(segments, variant)
	}
	u.Path = strings.TrimRight(u.Path, "/") + "/" + strings.Join(segments, "/")

	q := url.Values{}
	for key, values := range params {
		for _, v := range values {
			q.Add(key, v)
		}
	}
	q.Set(EmbedParam, version.Version)
	u.RawQuery = q.Encode()

	return u.String(), nil
}
