package http

import (
	"html/template"
	"strconv"

	"github.com/aretw0/marquee/pkg/domain"
)

type formData struct {
	domain.View
	MaxIndent int
}

var formTemplate = template.Must(template.New("form").Funcs(template.FuncMap{
	"num": func(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) },
}).Parse(formHTML))

const formHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>Marquee</title>
</head>
<body style="background:#1a1a1a;color:#eee;font-family:sans-serif;margin:20px;">
  <h1>Marquee</h1>

  <form method="POST">
    <label style="display:inline-flex;align-items:center;gap:5px;margin:10px 0;">
      <input type="checkbox" name="enabled" {{if .Enabled}}checked{{end}}>
      Enable display (allow showing on screen)
    </label>
    <br><br>

    <label>
      Chars per line:
      <input type="number" name="width" value="{{.Layout.Width}}" min="5" max="32" style="width:60px;">
    </label>
    &nbsp;&nbsp;
    <label>
      Lines per chunk:
      <input type="number" name="lines" value="{{.Layout.Lines}}" min="1" max="5" style="width:60px;">
    </label>
    &nbsp;&nbsp;
    <label>
      Interval (sec):
      <input type="number" step="0.5" name="interval" value="{{num .Layout.Interval}}" min="1" max="60" style="width:80px;">
    </label>
    &nbsp;&nbsp;
    <label>
      Indent (spaces):
      <input type="number" name="indent" value="{{.Layout.Indent}}" min="0" max="{{.MaxIndent}}" style="width:60px;">
    </label>

    <br><br>

    <textarea name="message"
              style="width:100%;height:150px;box-sizing:border-box;background:#222;
                     color:#eee;border:1px solid #555;padding:8px;font-family:monospace;">{{.Text}}</textarea>
    <br><br>

    <button type="submit" name="action" value="save">Save (update &amp; preview)</button>
    <button type="submit" name="action" value="send" style="margin-left:8px;">Send to screen</button>
    <button type="submit" name="action" value="stop" style="margin-left:8px;">Stop scrolling</button>
  </form>

  <div style="margin-top:15px;font-size:12px;color:#aaa;">
    File: {{.FilePath}}<br>
    Position: {{.Position}}<br>
    Max: {{.Layout.Lines}} lines &times; {{.Layout.Width}} chars, interval {{num .Layout.Interval}}s<br>
    Indent: {{.Layout.Indent}} spaces<br>
    Settings stored in: {{.SettingsPath}}
  </div>

  {{if .Status}}
  <div id="status" style="margin-top:10px;color:#0f0;">{{.Status}}</div>
  {{end}}

  {{if .Active}}
  <div style="margin-top:5px;color:#0f0;font-size:12px;">Scrolling is ACTIVE: chunks are shown on screen.</div>
  {{else}}
  <div style="margin-top:5px;color:#f5a623;font-size:12px;">Scrolling is NOT active. Press "Send to screen" to start.</div>
  {{end}}

  {{if .Preview}}
  <h2 style="margin-top:20px;font-size:16px;">Preview chunks (how it will look)</h2>
  {{range .Preview}}
  <pre class="chunk" style="background:#111;border:1px solid #444;padding:6px;margin:4px 0;display:inline-block;min-width:{{$.Layout.Width}}ch;white-space:pre;color:#eee;font-family:monospace;">
{{.}}</pre>
  {{end}}
  {{end}}
</body>
</html>
`
