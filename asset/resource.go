package asset

import (
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// A Resource is a readable stream backed by a local file or an http(s) URL.
type Resource struct {
	io.ReadCloser
	url *url.URL
}

// Returns the path to this resource.
func (r *Resource) Path() string {
	return r.url.String()
}

// Returns the file extension of the resource path in lower case.
func (r *Resource) Ext() string {
	return strings.ToLower(path.Ext(r.url.Path))
}

// Returns true if the Resource is streamed over http/https.
func (r *Resource) IsRemote() bool {
	return r.url.Scheme != ""
}

// Open a resource. Relative paths without a scheme are resolved against the
// directory of relTo when it is specified.
//
// The caller must close the returned resource.
func NewResource(pathToResource string, relTo *Resource) (*Resource, error) {
	resURL, err := resolveURL(pathToResource, relTo)
	if err != nil {
		return nil, err
	}

	var reader io.ReadCloser
	switch resURL.Scheme {
	case "":
		reader, err = os.Open(filepath.Clean(resURL.Path))
		if err != nil {
			return nil, errors.Wrapf(err, "resource: could not open '%s'", resURL.Path)
		}
	case "http", "https":
		resp, err := http.Get(resURL.String())
		if err != nil {
			return nil, errors.Wrapf(err, "resource: could not fetch '%s'", resURL.String())
		}
		if resp.StatusCode >= 400 {
			resp.Body.Close()
			return nil, errors.Errorf("resource: could not fetch '%s': status %d", resURL.String(), resp.StatusCode)
		}
		reader = resp.Body
	default:
		return nil, errors.Errorf("resource: unsupported scheme '%s'", resURL.Scheme)
	}

	return &Resource{
		ReadCloser: reader,
		url:        resURL,
	}, nil
}

// Create a resource from a reader.
func NewResourceFromStream(name string, source io.Reader) *Resource {
	resURL, err := url.Parse(name)
	if err != nil {
		resURL = &url.URL{Path: name}
	}
	return &Resource{
		ReadCloser: io.NopCloser(source),
		url:        resURL,
	}
}

func resolveURL(pathToResource string, relTo *Resource) (*url.URL, error) {
	resURL, err := url.Parse(strings.Replace(pathToResource, `\`, `/`, -1))
	if err != nil {
		return nil, errors.Wrapf(err, "resource: invalid path '%s'", pathToResource)
	}

	if resURL.Scheme != "" || relTo == nil || path.IsAbs(resURL.Path) {
		return resURL, nil
	}

	relPath := resURL.Path
	resURL = &url.URL{}
	*resURL = *relTo.url
	prefix := resURL.Path
	if resURL.Scheme == "" {
		prefix, err = filepath.Abs(relTo.url.Path)
		if err != nil {
			return nil, errors.Wrapf(err, "resource: could not detect abs path for %s", relTo.url.Path)
		}
	}
	resURL.Path = path.Join(path.Dir(filepath.ToSlash(prefix)), relPath)
	resURL.RawPath, resURL.RawQuery, resURL.Fragment = "", "", ""
	return resURL, nil
}
