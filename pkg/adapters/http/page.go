package http

import (
	"html/template"

	"github.com/aretw0/tasklist/pkg/view"
)

// pageTemplate escapes every task field through html/template.
var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8" />
<meta name="viewport" content="width=device-width, initial-scale=1" />
<title>Tasks</title>
<style>
body { font-family: system-ui, sans-serif; max-width: 40rem; margin: 2rem auto; }
li { display: flex; gap: .5rem; align-items: center; padding: .25rem 0; }
li.done span { text-decoration: line-through; color: #888; }
li span { flex: 1; }
</style>
</head>
<body>
<h1>Tasks</h1>
<form id="add"><input name="text" placeholder="What needs to be done?" autofocus /> <button>Add</button></form>
<form method="get"><input name="q" value="{{.Term}}" placeholder="Search" /></form>
{{if .Empty}}<p><em>{{.Placeholder}}</em></p>{{else}}
<ul>
{{range .Items}}<li class="{{if .Done}}done{{end}}">
<span>{{.Text}}</span>
<button onclick="toggle({{.ID}})">{{.ToggleLabel}}</button>
<button onclick="remove({{.ID}})">{{.DeleteLabel}}</button>
</li>
{{end}}</ul>{{end}}
<p>Total {{.Counts.Total}} · Pending {{.Counts.Pending}} · Completed {{.Counts.Completed}}</p>
<button onclick="clearCompleted()">Clear completed</button>
<button onclick="clearAll()">Clear all</button>
<script>
async function call(method, url, body) {
  const res = await fetch(url, {method, headers: {"Content-Type": "application/json"}, body: body && JSON.stringify(body)});
  if (!res.ok) { const e = await res.json().catch(() => ({})); alert(e.error || res.statusText); }
}
document.getElementById("add").onsubmit = async (ev) => {
  ev.preventDefault();
  const text = ev.target.text.value;
  if (!text.trim()) { alert("Please enter some text for the task!"); return; }
  await call("POST", "/api/tasks", {text});
  ev.target.reset();
};
function toggle(id) { call("POST", "/api/tasks/" + id + "/toggle"); }
function remove(id) { if (confirm("Delete this task?")) call("DELETE", "/api/tasks/" + id); }
function clearCompleted() { call("DELETE", "/api/tasks/completed"); }
function clearAll() { if (confirm("Are you sure? Every task will be permanently deleted!")) call("DELETE", "/api/tasks"); }
new EventSource("/api/events").onmessage = () => location.reload();
</script>
</body>
</html>
`))

type pageData struct {
	view.Model
	Placeholder string
}
