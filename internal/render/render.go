// Package render turns a generated thread into static HTML pages.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"strconv"
	"time"

	"github.com/itchan-dev/threadsim/internal/pagination"
	"github.com/itchan-dev/threadsim/shared/domain"
	"github.com/itchan-dev/threadsim/shared/logger"
)

const DefaultTitle = "Detecting unidentified objects in drone footage"

// Store receives rendered files.
type Store interface {
	Save(relativePath string, data io.Reader) (string, error)
}

type Options struct {
	BaseURL string // page 1 links here, page N to BaseURL+N
	Images  bool   // also write placeholder images
	Title   string
}

type Renderer struct {
	store Store
	text  *TextProcessor
	opts  Options
}

func New(store Store, opts Options) *Renderer {
	if opts.BaseURL == "" {
		opts.BaseURL = "/"
	}
	if opts.Title == "" {
		opts.Title = DefaultTitle
	}
	return &Renderer{store: store, text: NewTextProcessor(), opts: opts}
}

type Result struct {
	Pages  []string
	Images []string
}

type link struct {
	Label string
	URL   string // empty for the current page
}

type postView struct {
	Number         int
	UserId         int
	Username       string
	IsAuthorUpdate bool
	Rank           domain.Rank
	PostCount      int
	ISO            string
	Date           string
	Timestamp      string
	Body           template.HTML
}

type pageView struct {
	Title    string
	ThreadId string
	Nav      pagination.Navigation
	Links    []link
	Posts    []postView
}

// Render writes every page of thread, and its images when enabled.
func (r *Renderer) Render(thread *domain.Thread) (*Result, error) {
	res := &Result{}
	navs := pagination.Windows(len(thread.Pages), pagination.DefaultSpan)
	for i, page := range thread.Pages {
		html, err := r.RenderPage(thread, page, navs[i])
		if err != nil {
			return nil, err
		}
		name, err := r.store.Save(PageFileName(page.Index), bytes.NewReader(html))
		if err != nil {
			return nil, fmt.Errorf("failed to save page %d: %w", page.Index, err)
		}
		res.Pages = append(res.Pages, name)
	}

	if r.opts.Images {
		for _, id := range thread.ImagePool.Ids() {
			data, err := Placeholder(id)
			if err != nil {
				return nil, err
			}
			name, err := r.store.Save(imagePath(id), bytes.NewReader(data))
			if err != nil {
				return nil, fmt.Errorf("failed to save image %d: %w", id, err)
			}
			res.Images = append(res.Images, name)
		}
	}

	logger.Log.Info("thread rendered", "pages", len(res.Pages), "images", len(res.Images))
	return res, nil
}

func (r *Renderer) RenderPage(thread *domain.Thread, page domain.Page, nav pagination.Navigation) ([]byte, error) {
	view := pageView{
		Title:    r.opts.Title,
		ThreadId: thread.Id.String(),
		Nav:      nav,
		Links:    r.links(nav),
	}
	for _, post := range page.Posts {
		pv, err := r.postView(post)
		if err != nil {
			return nil, err
		}
		view.Posts = append(view.Posts, pv)
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, view); err != nil {
		return nil, fmt.Errorf("failed to execute page template for page %d: %w", page.Index, err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) RenderPost(post *domain.Post) (template.HTML, error) {
	return r.text.Render(PostMarkdown(post, r.ImageURL))
}

func (r *Renderer) postView(post *domain.Post) (postView, error) {
	body, err := r.RenderPost(post)
	if err != nil {
		return postView{}, fmt.Errorf("post %d: %w", post.Index, err)
	}
	return postView{
		Number:         post.Index,
		UserId:         post.Author.Id + 1,
		Username:       post.Author.Username,
		IsAuthorUpdate: post.Role == domain.RoleAuthorUpdate,
		Rank:           post.Author.Rank,
		PostCount:      post.Author.PostCount,
		ISO:            post.Timestamp.Format(time.RFC3339),
		Date:           post.Timestamp.Format(dateLayout),
		Timestamp:      post.Timestamp.Format(timestampLayout),
		Body:           body,
	}, nil
}

func (r *Renderer) links(nav pagination.Navigation) []link {
	var links []link
	if nav.First != 0 {
		links = append(links, link{"«", r.PageURL(nav.First)}, link{"Prev", r.PageURL(nav.Prev)})
	}
	for _, p := range nav.Before {
		links = append(links, link{strconv.Itoa(p), r.PageURL(p)})
	}
	links = append(links, link{Label: strconv.Itoa(nav.Current)})
	for _, p := range nav.After {
		links = append(links, link{strconv.Itoa(p), r.PageURL(p)})
	}
	if nav.Last != 0 {
		links = append(links, link{"Next", r.PageURL(nav.Next)}, link{"»", r.PageURL(nav.Last)})
	}
	return links
}

// PageURL points page 1 at the thread index.
func (r *Renderer) PageURL(page int) string {
	if page <= 1 {
		return r.opts.BaseURL
	}
	return r.opts.BaseURL + strconv.Itoa(page)
}

func (r *Renderer) ImageURL(id domain.ImageId) string {
	return r.opts.BaseURL + imagePath(id)
}

func PageFileName(page int) string {
	if page <= 1 {
		return "index.html"
	}
	return strconv.Itoa(page) + ".html"
}

func imagePath(id domain.ImageId) string {
	return "img/" + strconv.Itoa(id) + ".png"
}
