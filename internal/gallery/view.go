package gallery

import (
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"

	"imgserve/internal/pagination"

	"github.com/dustin/go-humanize"
)

// ImageRoutePrefix is the URL prefix images are served under.
const ImageRoutePrefix = "/images/"

// Tile is one gallery cell.
type Tile struct {
	Name    string    `json:"name"`
	Href    string    `json:"href"`
	Src     string    `json:"src"`
	Caption string    `json:"caption"`
	Size    string    `json:"size,omitempty"`
	ModTime time.Time `json:"modTime,omitempty"`
}

// Crumb is one component of the breadcrumb trail.
type Crumb struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// ViewInput carries everything BuildView needs. Images is the complete,
// already sorted listing; BuildView slices it with Window.
type ViewInput struct {
	// RootLabel names the root in titles and breadcrumbs.
	RootLabel string
	// Dir is the current directory relative to the root, forward slashes, "" for the root.
	Dir     string
	Images  []ImageEntry
	Subdirs []SubdirEntry
	Window  pagination.Window
	Sort    SortMode
	// SortDefaults decide the direction of a newly chosen sort field; the
	// default mode is omitted from generated links.
	SortDefaults SortDefaults
	Captions     CaptionFormatter
	// Flat disables directory navigation.
	Flat bool
}

// View is the presentation-ready gallery page handed to a renderer.
type View struct {
	Title        string            `json:"title"`
	Dir          string            `json:"dir"`
	Parent       string            `json:"parent"`
	HasParent    bool              `json:"hasParent"`
	Breadcrumb   []Crumb           `json:"breadcrumb"`
	Tiles        []Tile            `json:"tiles"`
	Subdirs      []SubdirEntry     `json:"subdirs"`
	Pagination   pagination.Window `json:"pagination"`
	Sort         SortMode          `json:"sort"`
	TotalImages  int               `json:"totalImages"`
	EmptyMessage string            `json:"emptyMessage,omitempty"`
	Flat         bool              `json:"flat"`

	sortDefaults SortDefaults
}

// BuildView assembles the page for one request. It performs no I/O.
func BuildView(in ViewInput) *View {
	v := &View{
		Dir:          in.Dir,
		Subdirs:      in.Subdirs,
		Pagination:   in.Window,
		Sort:         in.Sort,
		TotalImages:  len(in.Images),
		Flat:         in.Flat,
		Tiles:        []Tile{},
		sortDefaults: in.SortDefaults,
	}
	if v.Subdirs == nil || in.Flat {
		v.Subdirs = []SubdirEntry{}
	}

	display := in.RootLabel
	if in.Dir != "" {
		display = in.Dir
	}
	v.Title = "Image Gallery: " + display

	if !in.Flat {
		v.Breadcrumb = buildBreadcrumb(in.RootLabel, in.Dir)
		if in.Dir != "" {
			v.HasParent = true
			v.Parent = path.Dir(in.Dir)
			if v.Parent == "." {
				v.Parent = ""
			}
		}
	}

	start, end := in.Window.Start, in.Window.End
	if start < 0 {
		start = 0
	}
	if end > len(in.Images) {
		end = len(in.Images)
	}
	for i := start; i < end; i++ {
		img := in.Images[i]
		href := ImageHref(in.Dir, img.Name)
		tile := Tile{
			Name:    img.Name,
			Href:    href,
			Src:     href,
			Caption: in.Captions.Caption(img),
		}
		if img.HasModTime {
			tile.ModTime = img.ModTime
			tile.Size = humanize.IBytes(uint64(img.Size))
		}
		v.Tiles = append(v.Tiles, tile)
	}

	if len(v.Tiles) == 0 {
		if in.Dir == "" {
			v.EmptyMessage = "No image files found in this directory."
		} else {
			v.EmptyMessage = "No image files found in " + in.Dir + "."
		}
	}

	return v
}

// ImageHref returns the URL of an image in dir. Each path segment is escaped.
func ImageHref(dir, name string) string {
	rel := name
	if dir != "" {
		rel = dir + "/" + name
	}
	return ImageRoutePrefix + EscapePath(rel)
}

// EscapePath escapes each segment of a forward-slash path.
func EscapePath(p string) string {
	segments := strings.Split(p, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.Join(segments, "/")
}

func buildBreadcrumb(rootLabel, dir string) []Crumb {
	crumbs := []Crumb{{Name: rootLabel, Path: ""}}
	if dir == "" {
		return crumbs
	}

	current := ""
	for _, part := range strings.Split(dir, "/") {
		if part == "" {
			continue
		}
		if current == "" {
			current = part
		} else {
			current = current + "/" + part
		}
		crumbs = append(crumbs, Crumb{Name: part, Path: current})
	}
	return crumbs
}

// PageURL links to page p of the current directory with the current sort.
func (v *View) PageURL(p int) string {
	return v.link(v.Dir, p, v.Sort)
}

// SortURL links to the first page of the current directory sorted by field.
// Choosing the field that is already active flips its direction.
func (v *View) SortURL(field string) string {
	mode := ParseSortMode(field, "", v.sortDefaults)
	if mode.Field == v.Sort.Field {
		mode.Order = flip(v.Sort.Order)
	}
	return v.link(v.Dir, 1, mode)
}

// DirURL links to the first page of another directory, keeping the sort.
func (v *View) DirURL(dir string) string {
	return v.link(dir, 1, v.Sort)
}

func (v *View) link(dir string, page int, mode SortMode) string {
	q := url.Values{}
	if dir != "" && !v.Flat {
		q.Set("dir", dir)
	}
	if page > 1 {
		q.Set("page", strconv.Itoa(page))
	}
	if mode != ParseSortMode("", "", v.sortDefaults) {
		q.Set("sort", string(mode.Field))
		q.Set("order", string(mode.Order))
	}
	if len(q) == 0 {
		return "/"
	}
	return "/?" + q.Encode()
}

func flip(o SortOrder) SortOrder {
	if o == SortDesc {
		return SortAsc
	}
	return SortDesc
}
