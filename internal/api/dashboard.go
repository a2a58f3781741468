package api

import (
	"html/template"
	"log"
	"net/http"

	"voxpop.io/feedback-service/internal/store"
)

type dashboardData struct {
	Positive int64
	Neutral  int64
	Negative int64
	Recent   []store.Feedback
}

func (h *APIHandler) DashboardHandler(w http.ResponseWriter, r *http.Request) {
	counts, err := h.feedbackService.SentimentCounts()
	if err != nil {
		log.Printf("Error loading sentiment counts for dashboard: %v", err)
		http.Error(w, "failed to load dashboard", http.StatusInternalServerError)
		return
	}

	recent, err := h.feedbackService.RecentFeedback()
	if err != nil {
		log.Printf("Error loading recent feedback for dashboard: %v", err)
		http.Error(w, "failed to load dashboard", http.StatusInternalServerError)
		return
	}

	data := dashboardData{
		Positive: counts[store.SentimentPositive],
		Neutral:  counts[store.SentimentNeutral],
		Negative: counts[store.SentimentNegative],
		Recent:   recent,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := dashboardTemplate.Execute(w, data); err != nil {
		log.Printf("Error rendering dashboard: %v", err)
	}
}

var dashboardTemplate = template.Must(template.New("dashboard").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Feedback Dashboard</title>
<style>
  body { font-family: sans-serif; margin: 2rem; color: #222; }
  .counts { display: flex; gap: 1rem; margin-bottom: 1.5rem; }
  .card { border: 1px solid #ddd; border-radius: 6px; padding: 1rem 1.5rem; }
  .card h2 { margin: 0 0 .25rem; font-size: .9rem; text-transform: uppercase; color: #666; }
  .card p { margin: 0; font-size: 1.6rem; }
  table { border-collapse: collapse; width: 100%; }
  th, td { border-bottom: 1px solid #eee; padding: .4rem .6rem; text-align: left; }
  form { margin-bottom: 1.5rem; }
  input, select, button { padding: .35rem .5rem; }
  #results li { margin: .25rem 0; }
</style>
</head>
<body>
<h1>Feedback Dashboard</h1>

<div class="counts">
  <div class="card"><h2>Positive</h2><p>{{.Positive}}</p></div>
  <div class="card"><h2>Neutral</h2><p>{{.Neutral}}</p></div>
  <div class="card"><h2>Negative</h2><p>{{.Negative}}</p></div>
</div>

<form id="ask">
  <input type="text" name="q" placeholder="e.g. show me negative feedback about bugs" size="50">
  <button type="submit">Ask</button>
</form>

<form id="filter">
  <select name="sentiment">
    <option value="">any sentiment</option>
    <option value="positive">positive</option>
    <option value="neutral">neutral</option>
    <option value="negative">negative</option>
  </select>
  <input type="text" name="keyword" placeholder="keyword">
  <button type="submit">Filter</button>
</form>

<ul id="results"></ul>

<h2>Recent feedback</h2>
<table>
  <tr><th>Sentiment</th><th>Text</th><th>Source</th><th>Received</th></tr>
  {{range .Recent}}
  <tr><td>{{.Sentiment}}</td><td>{{.Text}}</td><td>{{.Source}}</td><td>{{.CreatedAt.Format "2006-01-02 15:04"}}</td></tr>
  {{end}}
</table>

<script>
function render(items) {
  const list = document.getElementById('results');
  list.innerHTML = '';
  for (const fb of items) {
    const li = document.createElement('li');
    li.textContent = '[' + fb.sentiment + '] ' + fb.text;
    list.appendChild(li);
  }
}
document.getElementById('ask').addEventListener('submit', async (e) => {
  e.preventDefault();
  const q = new FormData(e.target).get('q');
  const res = await fetch('/api/insights?q=' + encodeURIComponent(q));
  if (res.ok) render((await res.json()).feedback);
});
document.getElementById('filter').addEventListener('submit', async (e) => {
  e.preventDefault();
  const data = new FormData(e.target);
  const params = new URLSearchParams();
  if (data.get('sentiment')) params.set('sentiment', data.get('sentiment'));
  if (data.get('keyword')) params.set('keyword', data.get('keyword'));
  const res = await fetch('/api/feedback?' + params.toString());
  if (res.ok) render((await res.json()).feedback);
});
</script>
</body>
</html>
`))
