package server

import "html/template"

// boardData is the render model for the board page.
type boardData struct {
	User        string
	ShowOthers  bool
	Groups      []ownerGroup
	PendingText string
	PendingDate string
	Today       string
}

// ownerGroup mirrors board.Group for template rendering.
type ownerGroup struct {
	Owner string
	Tasks []taskRow
}

// taskRow is one rendered task line.
type taskRow struct {
	ID        string
	Text      string
	Date      string
	Completed bool
}

var boardTemplate = template.Must(template.New("board").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Taskboard</title>
<style>
body { font-family: sans-serif; max-width: 40rem; margin: 2rem auto; padding: 0 1rem; color: #222; }
header { display: flex; justify-content: space-between; align-items: baseline; }
header form { display: inline; }
form.add { display: flex; gap: .5rem; margin: 1rem 0; }
form.add input[name=text] { flex: 1; }
section { margin: 1.5rem 0; }
section h2 { display: inline-block; margin: 0 .5rem 0 0; font-size: 1.1rem; }
ul { list-style: none; padding: 0; }
li { display: flex; gap: .5rem; align-items: baseline; padding: .25rem 0; }
li .text { flex: 1; }
li .date { color: #888; font-size: .85rem; }
button { cursor: pointer; }
.empty { color: #888; }
li form, section form { display: inline; }
</style>
</head>
<body>
<header>
<h1>Taskboard</h1>
<div>{{.User}} <form method="post" action="/logout"><button type="submit">Sign out</button></form></div>
</header>
<form class="add" method="post" action="/tasks">
<input type="text" name="text" value="{{.PendingText}}" placeholder="What needs doing?" autofocus>
<input type="date" name="date" value="{{if .PendingDate}}{{.PendingDate}}{{else}}{{.Today}}{{end}}">
<button type="submit">Add</button>
</form>
<form method="post" action="/filter">
<button type="submit">{{if .ShowOthers}}Show only my tasks{{else}}Show everyone's tasks{{end}}</button>
</form>
{{if .Groups}}
{{range .Groups}}
<section>
<h2>{{.Owner}}</h2>
<form method="post" action="/owners/delete">
<input type="hidden" name="owner" value="{{.Owner}}">
<button type="submit">Delete all</button>
</form>
<ul>
{{range .Tasks}}
<li>
<form method="post" action="/tasks/toggle">
<input type="hidden" name="id" value="{{.ID}}">
<button type="submit">{{if .Completed}}&#9745;{{else}}&#9744;{{end}}</button>
</form>
<span class="text">{{if .Completed}}<s>{{.Text}}</s>{{else}}{{.Text}}{{end}}</span>
<span class="date">{{.Date}}</span>
<form method="post" action="/tasks/delete">
<input type="hidden" name="id" value="{{.ID}}">
<button type="submit">&#10005;</button>
</form>
</li>
{{end}}
</ul>
</section>
{{end}}
{{else}}
<p class="empty">No tasks yet. Add the first one above.</p>
{{end}}
</body>
</html>
`))

var loginTemplate = template.Must(template.New("login").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Taskboard - Sign in</title>
<style>
body { font-family: sans-serif; max-width: 24rem; margin: 4rem auto; padding: 0 1rem; color: #222; text-align: center; }
a.signin { display: inline-block; margin-top: 1rem; padding: .5rem 1.5rem; border: 1px solid #ccc; border-radius: 4px; text-decoration: none; color: inherit; }
</style>
</head>
<body>
<h1>Taskboard</h1>
<p>A shared to-do list. Sign in to see and manage tasks.</p>
<a class="signin" href="/oauth/login">Sign in with Google</a>
</body>
</html>
`))
