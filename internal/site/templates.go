package site

const baseHead = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>
body{font-family:-apple-system,BlinkMacSystemFont,"Segoe UI",Roboto,sans-serif;max-width:960px;margin:0 auto;padding:1rem;color:#1f2328;background:#fff}
a{color:#0969da;text-decoration:none}
a:hover{text-decoration:underline}
nav{border-bottom:1px solid #d1d9e0;margin-bottom:1.5rem;padding-bottom:.75rem}
nav a{margin-right:1rem;font-weight:600}
.card{border:1px solid #d1d9e0;border-radius:6px;padding:1rem;margin-bottom:1rem}
.muted{color:#59636e;font-size:.875rem}
.stat{display:inline-block;margin-right:1.5rem}
.stat b{font-size:1.25rem}
ul{padding-left:1.25rem}
footer{border-top:1px solid #d1d9e0;margin-top:2rem;padding-top:.75rem;color:#59636e;font-size:.8rem}
</style>
</head>
<body>
<nav>
<a href="/">Home</a>
<a href="/archive.html">Archive</a>
<a href="/about.html">About</a>
</nav>
`

const baseFoot = `<footer>Rebuilt daily from GitHub trending data. Last updated {{.LastUpdate}}.</footer>
</body>
</html>
`

const indexTemplate = baseHead + `
<h1>Daily GitHub Trending Digest</h1>
<p class="muted">Last updated {{.LastUpdate}}</p>

<div class="card">
{{if .Summary}}<p>{{.Summary}}</p>{{else}}<p>No reports published yet. The first crawl will appear here.</p>{{end}}
</div>

{{if .Trends}}
<h2>Tech Trends</h2>
<ul>
{{range .Trends}}<li>{{.}}</li>
{{end}}</ul>
{{end}}

{{if .Projects}}
<h2>Latest Trending Projects</h2>
{{range .Projects}}
<div class="card">
<h3><a href="{{.URL}}">{{.FullName}}</a></h3>
{{if .Note}}<p>{{.Note}}</p>{{else}}<p>{{.Description}}</p>{{end}}
<p class="muted">{{.Language}}{{if .Stars}} &middot; {{.Stars}} stars{{end}}{{if .StarsToday}} &middot; +{{.StarsToday}} today{{end}}</p>
</div>
{{end}}
{{end}}

{{if .RecentReports}}
<h2>Recent Reports</h2>
<ul>
{{range .RecentReports}}<li><a href="{{.URL}}">{{.Date}}</a> <span class="muted">({{.ProjectsCount}} projects)</span></li>
{{end}}</ul>
{{end}}

{{if .LanguageStats}}
<h2>Languages</h2>
<p>{{range .LanguageStats}}<span class="stat"><b>{{.Count}}</b> {{.Language}}</span>{{end}}</p>
{{end}}

{{if .TotalStarsToday}}<p class="muted">Stars gained across tracked projects: {{.TotalStarsToday}}</p>{{end}}
` + baseFoot

const archiveTemplate = baseHead + `
<h1>Report Archive</h1>

{{if not .Years}}<p class="muted">No reports yet.</p>{{end}}
{{range $year := .Years}}
<h2>{{$year}}</h2>
{{range $month, $entries := index $.ReportsByYear $year}}
<h3>{{$year}}-{{$month}}</h3>
<ul>
{{range $entries}}<li><a href="{{.URL}}">{{.Date}}</a> <span class="muted">{{.ProjectsCount}} projects, {{.TrendsCount}} trends</span></li>
{{end}}</ul>
{{end}}
{{end}}
` + baseFoot

const reportTemplate = baseHead + `
<h1>GitHub Trending Report - {{.Date}}</h1>
<p class="muted">Generated {{.GenerationTime}}</p>

{{if .Summary}}
<div class="card"><p>{{.Summary}}</p></div>
{{end}}

{{if .Trends}}
<h2>Tech Trends</h2>
<ul>
{{range .Trends}}<li>{{.}}</li>
{{end}}</ul>
{{end}}

<h2>Projects ({{len .Projects}})</h2>
{{range .Projects}}
<div class="card">
<h3><a href="{{.URL}}">{{.FullName}}</a></h3>
{{if .Note}}<p>{{.Note}}</p>{{else}}<p>{{.Description}}</p>{{end}}
<p class="muted">{{.Language}}{{if .Stars}} &middot; {{.Stars}} stars{{end}}{{if .StarsToday}} &middot; +{{.StarsToday}} today{{end}} &middot; by {{.Author}}</p>
</div>
{{end}}
` + baseFoot

const aboutTemplate = baseHead + `
<h1>About</h1>
<div class="card">
<p>This site publishes an automated daily digest of GitHub's trending repositories.
Each morning the pipeline crawls the trending page, deduplicates and summarizes the
projects with a language model, and rebuilds this site from the full report history.</p>
<ul>
<li>Data source: GitHub Trending (daily)</li>
<li>Analysis: LLM-generated summaries and trend extraction</li>
<li>Publishing: static pages rebuilt on every run</li>
</ul>
</div>
` + baseFoot
