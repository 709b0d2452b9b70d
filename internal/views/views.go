// Package views renders the server-side HTML pages.
package views

import (
	"bytes"
	"fmt"
	"html/template"
	"io"

	"fitChallengeAPI/internal/types/challenge"
)

const layout = `{{define "layout"}}<!DOCTYPE html>
<html lang="en">
<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
	<title>{{template "title" .}} - FitChallenge</title>
	<style>
		body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; line-height: 1.6; color: #333; max-width: 720px; margin: 0 auto; padding: 20px; background-color: #f9f9f9; }
		.container { background-color: #fff; padding: 32px; border-radius: 8px; box-shadow: 0 2px 4px rgba(0,0,0,0.1); }
		h1 { color: #2c3e50; border-bottom: 2px solid #eee; padding-bottom: 10px; }
		label { display: block; margin-top: 12px; }
		.share { background-color: #e8f4f8; padding: 15px; border-radius: 5px; margin-top: 20px; }
		a { color: #3498db; }
	</style>
</head>
<body>
	<div class="container">
	{{template "content" .}}
	</div>
</body>
</html>{{end}}`

const indexPage = `{{define "title"}}Home{{end}}
{{define "content"}}
		<h1>FitChallenge</h1>
		<p>Set a goal, share it with friends and track it from the app.</p>
		<ul>
			<li><a href="/me/challenges/create">Create a challenge</a></li>
			<li><a href="/me/challenges">My challenges</a></li>
		</ul>
		<p>Try one of ours:</p>
		<ul>
			<li><a href="//{{.Hostname}}/s/5walks">5 walks this week</a></li>
			<li><a href="//{{.Hostname}}/s/1run">A single workout this week</a></li>
			<li><a href="//{{.Hostname}}/s/c25k">Couch to 5k</a></li>
			<li><a href="//{{.Hostname}}/s/365in365">365 in 365</a></li>
		</ul>
{{end}}`

const createPage = `{{define "title"}}Create a challenge{{end}}
{{define "content"}}
		<h1>Create a challenge</h1>
		<form method="post" action="/me/challenges">
			<label>Name <input type="text" name="name"></label>
			<label>Description <textarea name="description"></textarea></label>
			<label>Sessions <input type="number" name="num_sessions" min="0" value="3"></label>
			<label>Days <input type="number" name="num_days" min="1" value="7"></label>
			<label>Minimum minutes per session <input type="number" name="min_minutes" min="0"></label>
			<label><input type="checkbox" name="run" value="true" checked> Run</label>
			<label><input type="checkbox" name="walk" value="true"> Walk</label>
			<label><input type="checkbox" name="cycle" value="true"> Cycle</label>
			<button type="submit">Create</button>
			<button type="submit" formaction="/cancel">Cancel</button>
		</form>
{{end}}`

const challengePage = `{{define "title"}}{{.Challenge.Name}}{{end}}
{{define "content"}}
		<h1>{{.Challenge.Name}}</h1>
		<p>{{.Challenge.Summary}}</p>
		{{range .Challenge.Segments}}
		<p>
			{{.Count}} {{.Kind}} in {{.Days}} days
			({{range $i, $t := .Filter.ActivityTypes}}{{if $i}}, {{end}}{{$t}}{{end}})
			{{with .Filter.MinMinutes}}of at least {{.}} minute{{if $.Plural}}s{{end}} each{{end}}
		</p>
		{{end}}
		{{if .ShareURL}}
		<div class="share">
			Share this challenge: <a href="{{.ShareURL}}">{{.ShareURL}}</a><br>
			<img src="/s/{{.Challenge.ShareID}}/qr.png" alt="QR code" width="160" height="160">
		</div>
		{{end}}
		<p><a href="/me/challenges/{{.Challenge.ID}}/delete">Delete</a> | <a href="/me/challenges">Back</a></p>
{{end}}`

const challengesPage = `{{define "title"}}My challenges{{end}}
{{define "content"}}
		<h1>My challenges</h1>
		{{if .Challenges}}
		<ul>
			{{range .Challenges}}
			<li><a href="/me/challenges/{{.ID}}">{{.Name}}</a> <a href="/me/challenges/{{.ID}}/delete">delete</a></li>
			{{end}}
		</ul>
		{{else}}
		<p>No challenges yet.</p>
		{{end}}
		<p><a href="/me/challenges/create">Create a challenge</a> | <a href="/logout">Log out</a></p>
{{end}}`

var pages = map[string]*template.Template{
	"index":      parse("index", indexPage),
	"create":     parse("create", createPage),
	"challenge":  parse("challenge", challengePage),
	"challenges": parse("challenges", challengesPage),
}

func parse(name, body string) *template.Template {
	t := template.Must(template.New(name).Parse(layout))
	return template.Must(t.Parse(body))
}

// Renderer holds the values shared by every page.
type Renderer struct {
	hostname string
}

func NewRenderer(hostname string) *Renderer {
	return &Renderer{hostname: hostname}
}

type indexData struct {
	Hostname string
}

type challengeData struct {
	Hostname  string
	Challenge challenge.Challenge
	ShareURL  string
	Plural    bool
}

type challengesData struct {
	Challenges []challenge.Challenge
}

func (r *Renderer) Index(w io.Writer) error {
	return render(w, "index", indexData{Hostname: r.hostname})
}

func (r *Renderer) Create(w io.Writer) error {
	return render(w, "create", indexData{Hostname: r.hostname})
}

// Challenge renders a single challenge. shareURL may be empty.
func (r *Renderer) Challenge(w io.Writer, c challenge.Challenge, shareURL string) error {
	return render(w, "challenge", challengeData{
		Hostname:  r.hostname,
		Challenge: c,
		ShareURL:  shareURL,
		Plural:    c.PluralMinutes(),
	})
}

func (r *Renderer) Challenges(w io.Writer, list []challenge.Challenge) error {
	return render(w, "challenges", challengesData{Challenges: list})
}

// render executes into a buffer first so that a template error never leaves
// a half-written page behind.
func render(w io.Writer, page string, data any) error {
	var buf bytes.Buffer
	if err := pages[page].ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("render %s: %w", page, err)
	}
	_, err := buf.WriteTo(w)
	return err
}
