package templates

import (
	"context"
	"html/template"
	"io"

	"github.com/a-h/templ"
)

// NOTE: In a full project these would be .templ files compiled via `templ generate`.
// They are inlined here as html/template and exposed as templ components so the
// handlers render everything through the same templ.Component seam.

// Field is one input of a wizard step form.
type Field struct {
	Name     string
	Label    string
	Type     string // text, date, number, textarea
	Value    string
	Help     string
	Error    string
	Required bool
}

// ChildRow is one row of the repeatable child formset. Rows beyond the
// stored entries render blank for new input.
type ChildRow struct {
	Index    int // formset index, zero-based
	Num      int // display number, one-based
	Name     string
	DOB      string
	NameErr  string
	DOBErr   string
	Existing bool
}

// NavItem is one entry of the step progress strip.
type NavItem struct {
	ID        string
	Title     string
	Active    bool
	Completed bool
	Reachable bool
}

// StepView is the full view model for one wizard step page.
type StepView struct {
	Title    string
	StepID   string
	Intro    string
	Fields   []Field
	IsList   bool
	Children []ChildRow
	Nav      []NavItem
}

type QA struct {
	Question string
	Answer   string
}

type SummarySection struct {
	Title string
	Items []QA
}

type SummaryView struct {
	Sections []SummarySection
}

type DownloadsView struct {
	Docs []string
}

// Landing renders the start page.
func Landing() templ.Component { return component(landingTmpl, nil) }

// Step renders a wizard step form.
func Step(v StepView) templ.Component { return component(stepTmpl, v) }

// Summary renders the review page shown after the final step.
func Summary(v SummaryView) templ.Component { return component(summaryTmpl, v) }

// Downloads renders the downloads and supporting-documents page.
func Downloads(v DownloadsView) templ.Component { return component(downloadsTmpl, v) }

func component(t *template.Template, data any) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return t.ExecuteTemplate(w, "base", data)
	})
}

var baseTmpl = template.Must(template.New("base").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>J101 Maintenance Application</title>
<link rel="preconnect" href="https://fonts.googleapis.com">
<link rel="preconnect" href="https://fonts.gstatic.com" crossorigin>
<link href="https://fonts.googleapis.com/css2?family=IBM+Plex+Mono:wght@400;500;600&family=IBM+Plex+Sans:wght@300;400;500;600&display=swap" rel="stylesheet">
<style>
  :root {
    --ink: #0d1117;
    --paper: #f5f0e8;
    --ledger: #e8e0cc;
    --accent: #1d5c34;
    --warn: #c0392b;
    --muted: #6b5e4e;
    --rule: #b8a898;
  }
  * { box-sizing: border-box; }
  body {
    background: var(--paper);
    color: var(--ink);
    font-family: 'IBM Plex Sans', sans-serif;
    background-image:
      repeating-linear-gradient(0deg, transparent, transparent 27px, var(--rule) 27px, var(--rule) 28px);
    min-height: 100vh;
    margin: 0;
  }
  .mono { font-family: 'IBM Plex Mono', monospace; }
  .stamp {
    display: inline-block;
    border: 3px solid var(--accent);
    color: var(--accent);
    font-family: 'IBM Plex Mono', monospace;
    font-weight: 600;
    letter-spacing: 0.15em;
    padding: 2px 10px;
    transform: rotate(-2deg);
    font-size: 0.7rem;
  }
  .card {
    background: rgba(255,255,255,0.7);
    border: 1px solid var(--ledger);
    border-left: 4px solid var(--ink);
    padding: 24px;
  }
  .field-label {
    font-family: 'IBM Plex Mono', monospace;
    font-size: 0.6rem;
    font-weight: 600;
    letter-spacing: 0.1em;
    text-transform: uppercase;
    color: var(--muted);
    display: block;
    margin-bottom: 2px;
  }
  .field-help { font-size: 0.72rem; color: var(--muted); margin-top: 2px; }
  .field-error { font-size: 0.75rem; color: var(--warn); margin-top: 2px; font-weight: 600; }
  input, select, textarea {
    background: white;
    border: 1px solid var(--rule);
    border-bottom: 2px solid var(--ink);
    padding: 6px 8px;
    font-family: 'IBM Plex Mono', monospace;
    font-size: 0.85rem;
    width: 100%;
    outline: none;
  }
  input:focus, textarea:focus { border-bottom-color: var(--accent); }
  .btn {
    font-family: 'IBM Plex Mono', monospace;
    font-weight: 600;
    font-size: 0.8rem;
    letter-spacing: 0.08em;
    padding: 8px 18px;
    border: 2px solid var(--ink);
    cursor: pointer;
    text-transform: uppercase;
    text-decoration: none;
    display: inline-block;
    color: var(--ink);
    background: white;
  }
  .btn-primary { background: var(--ink); color: white; }
  .btn-primary:hover { background: var(--accent); border-color: var(--accent); }
  .section-header {
    font-family: 'IBM Plex Mono', monospace;
    font-size: 0.7rem;
    font-weight: 600;
    letter-spacing: 0.18em;
    text-transform: uppercase;
    color: var(--muted);
    border-bottom: 1px solid var(--rule);
    padding-bottom: 4px;
    margin-bottom: 16px;
  }
  .progress { display: flex; gap: 6px; margin-bottom: 24px; flex-wrap: wrap; }
  .progress a, .progress span {
    font-family: 'IBM Plex Mono', monospace;
    font-size: 0.65rem;
    letter-spacing: 0.1em;
    text-transform: uppercase;
    padding: 4px 10px;
    border: 1px solid var(--rule);
    text-decoration: none;
    color: var(--muted);
    background: white;
  }
  .progress .active { border-color: var(--ink); color: var(--ink); font-weight: 600; }
  .progress .done { border-color: var(--accent); color: var(--accent); }
  .grid2 { display: grid; grid-template-columns: 1fr 1fr; gap: 12px 16px; }
  .qa-row { display: grid; grid-template-columns: 2fr 3fr; gap: 12px; padding: 6px 0; border-bottom: 1px solid var(--ledger); font-size: 0.85rem; }
</style>
</head>
<body>
<div style="max-width:860px;margin:0 auto;padding:32px 24px;">

<div style="display:flex;align-items:flex-start;justify-content:space-between;margin-bottom:28px;">
  <div>
    <div style="font-family:'IBM Plex Mono',monospace;font-size:0.65rem;letter-spacing:0.2em;color:var(--muted);margin-bottom:4px;">
      REPUBLIC OF SOUTH AFRICA &middot; MAINTENANCE COURT
    </div>
    <h1 style="font-family:'IBM Plex Mono',monospace;font-size:1.5rem;font-weight:600;letter-spacing:-0.02em;margin:0;">
      Maintenance Application Assistant
    </h1>
    <div style="font-size:0.85rem;color:var(--muted);margin-top:4px;">
      Application for a Maintenance Order &middot; Form <strong>J101</strong>
    </div>
  </div>
  <div style="text-align:right;">
    <div class="stamp">FORM J101</div>
    <div style="font-family:'IBM Plex Mono',monospace;font-size:0.65rem;color:var(--muted);margin-top:8px;">Maintenance Act 99 of 1998</div>
  </div>
</div>

{{template "content" .}}

<div style="margin-top:48px;padding-top:16px;border-top:1px solid var(--rule);font-family:'IBM Plex Mono',monospace;font-size:0.6rem;color:var(--muted);text-align:center;">
  THIS TOOL HELPS COMPLETE FORM J101 &middot; IT DOES NOT PROVIDE LEGAL ADVICE
</div>
</div>
</body>
</html>`))

var landingTmpl = template.Must(template.Must(baseTmpl.Clone()).Parse(`
{{define "content"}}
<div class="card">
  <div class="section-header">Before You Begin</div>
  <p style="font-size:0.9rem;line-height:1.6;">
    This assistant walks you through the questions on the J101 maintenance
    application form, one section at a time. Your answers are saved as you
    go, and at the end you can download the completed form as a PDF along
    with a checklist of supporting documents to take to court.
  </p>
  <p style="font-size:0.9rem;line-height:1.6;">
    You will need your South African ID number, the other parent's details,
    and a picture of your monthly income and expenses.
  </p>
  <div style="margin-top:20px;">
    <a href="/start" class="btn btn-primary">START APPLICATION &rarr;</a>
  </div>
</div>
{{end}}`))

var stepTmpl = template.Must(template.Must(baseTmpl.Clone()).Parse(`
{{define "field"}}
<div{{if eq .Type "textarea"}} style="grid-column:1/-1;"{{end}}>
  <label class="field-label">{{.Label}}{{if .Required}} *{{end}}</label>
  {{if eq .Type "textarea"}}
  <textarea name="{{.Name}}" rows="3" style="resize:vertical;">{{.Value}}</textarea>
  {{else if eq .Type "number"}}
  <input type="number" name="{{.Name}}" value="{{.Value}}" step="0.01" min="0" placeholder="0.00" class="mono">
  {{else if eq .Type "date"}}
  <input type="date" name="{{.Name}}" value="{{.Value}}" class="mono">
  {{else}}
  <input type="text" name="{{.Name}}" value="{{.Value}}">
  {{end}}
  {{if .Error}}<div class="field-error">{{.Error}}</div>
  {{else if .Help}}<div class="field-help">{{.Help}}</div>{{end}}
</div>
{{end}}

{{define "content"}}
<div class="progress">
  {{range .Nav}}
    {{if .Active}}<span class="active">{{.Title}}</span>
    {{else if .Reachable}}<a href="/start?step={{.ID}}" {{if .Completed}}class="done"{{end}}>{{.Title}}</a>
    {{else}}<span>{{.Title}}</span>{{end}}
  {{end}}
</div>

<div class="card">
  <div class="section-header">{{.Title}}</div>
  {{if .Intro}}<p style="font-size:0.85rem;color:var(--muted);margin-top:0;">{{.Intro}}</p>{{end}}
  <form method="post" action="/start?step={{.StepID}}">
    {{if .IsList}}
      {{range .Children}}
      <div style="border:1px solid var(--ledger);padding:14px;margin-bottom:12px;background:white;">
        <div style="display:flex;justify-content:space-between;align-items:center;margin-bottom:8px;">
          <span class="field-label" style="margin:0;">Child {{.Num}}</span>
          {{if .Existing}}
          <label style="font-size:0.7rem;color:var(--warn);font-family:'IBM Plex Mono',monospace;">
            <input type="checkbox" name="child_details-{{.Index}}-DELETE" style="width:auto;"> REMOVE
          </label>
          {{end}}
        </div>
        <div class="grid2">
          <div>
            <label class="field-label">Full Name</label>
            <input type="text" name="child_details-{{.Index}}-full_name" value="{{.Name}}">
            {{if .NameErr}}<div class="field-error">{{.NameErr}}</div>{{end}}
          </div>
          <div>
            <label class="field-label">Date of Birth</label>
            <input type="date" name="child_details-{{.Index}}-date_of_birth" value="{{.DOB}}" class="mono">
            {{if .DOBErr}}<div class="field-error">{{.DOBErr}}</div>{{end}}
          </div>
        </div>
      </div>
      {{end}}
    {{else}}
      <div class="grid2">
        {{range .Fields}}{{template "field" .}}{{end}}
      </div>
    {{end}}
    <div style="margin-top:20px;display:flex;justify-content:flex-end;">
      <button type="submit" class="btn btn-primary">SAVE &amp; CONTINUE &rarr;</button>
    </div>
  </form>
</div>
{{end}}`))

var summaryTmpl = template.Must(template.Must(baseTmpl.Clone()).Parse(`
{{define "content"}}
<div class="card">
  <div class="section-header">Review Your Application</div>
  {{if not .Sections}}
  <p style="font-size:0.9rem;color:var(--muted);">Nothing captured yet. <a href="/start">Start the application</a>.</p>
  {{else}}
  {{range .Sections}}
  <div style="margin-bottom:20px;">
    <div class="section-header" style="margin-bottom:8px;">{{.Title}}</div>
    {{range .Items}}
    <div class="qa-row">
      <div style="color:var(--muted);">{{.Question}}</div>
      <div class="mono">{{.Answer}}</div>
    </div>
    {{end}}
  </div>
  {{end}}
  <div style="margin-top:24px;display:flex;gap:12px;flex-wrap:wrap;">
    <a href="/generate_pdf" class="btn btn-primary">&darr; DOWNLOAD COMPLETED J101</a>
    <a href="/downloads" class="btn">DOWNLOADS &amp; CHECKLIST</a>
    <a href="/start" class="btn">&larr; BACK TO FORM</a>
  </div>
  {{end}}
</div>
{{end}}`))

var downloadsTmpl = template.Must(template.Must(baseTmpl.Clone()).Parse(`
{{define "content"}}
<div class="card" style="margin-bottom:24px;">
  <div class="section-header">Your Documents</div>
  <div style="display:flex;gap:12px;flex-wrap:wrap;">
    <a href="/generate_pdf" class="btn btn-primary">&darr; COMPLETED J101 (PDF)</a>
    <a href="/downloads/checklist.pdf" class="btn">&darr; CHECKLIST &amp; SUMMARY (PDF)</a>
    <a href="/downloads/summary.csv" class="btn">&darr; ANSWERS (CSV)</a>
    <a href="/downloads/summary.xlsx" class="btn">&darr; ANSWERS (XLSX)</a>
  </div>
</div>

<div class="card">
  <div class="section-header">Documents To Bring To Court</div>
  <ul style="font-size:0.9rem;line-height:1.9;padding-left:20px;">
    {{range .Docs}}<li>{{.}}</li>{{end}}
  </ul>
</div>
{{end}}`))
