package render

import "html/template"

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>{{.Title}} | Page {{.Nav.Current}} of {{.Nav.Total}}</title>
</head>
<body>
  <main class="thread" data-thread-id="{{.ThreadId}}">
    <h1>{{.Title}}</h1>
    {{template "nav" .}}
    {{range .Posts}}
    <article class="post" id="post-{{.Number}}">
      <header>
        <span class="username" data-user-id="{{.UserId}}">{{.Username}}</span>
        {{- if .IsAuthorUpdate}} <span class="OP">Author</span>{{end}}
        <span class="rank">{{.Rank}}</span>
        <span class="post-count">{{.PostCount}} posts</span>
        <time datetime="{{.ISO}}" title="{{.Date}}">{{.Timestamp}}</time>
        <a class="permalink" href="#post-{{.Number}}">#{{.Number}}</a>
      </header>
      <div class="content">{{.Body}}</div>
    </article>
    {{end}}
    {{template "nav" .}}
  </main>
</body>
</html>
{{define "nav"}}<nav class="pagination">
      <span>Page {{.Nav.Current}} of {{.Nav.Total}}</span>
      <ul>
        {{- range .Links}}
        {{if .URL}}<a href="{{.URL}}"><li>{{.Label}}</li></a>{{else}}<li class="current">{{.Label}}</li>{{end}}
        {{- end}}
      </ul>
    </nav>{{end}}
`))
