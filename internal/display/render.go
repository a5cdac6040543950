package display

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/pixil98/go-pymon/internal/game"
	"github.com/pixil98/go-pymon/internal/session"
)

// templateFuncs provides utility functions for templates.
var templateFuncs = func() template.FuncMap {
	funcs := sprig.TxtFuncMap()
	funcs["title"] = Title
	return funcs
}()

// ExpandTemplate expands a template string using the provided data.
func ExpandTemplate(tmplStr string, data any) (string, error) {
	tmpl, err := template.New("").Funcs(templateFuncs).Parse(tmplStr)
	if err != nil {
		return "", fmt.Errorf("parsing template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing template: %w", err)
	}
	return buf.String(), nil
}

// Renderer turns session reports into player-facing text. Each action kind
// has a template named after it.
type Renderer struct {
	tmpl  *template.Template
	width int
}

// NewRenderer parses the built-in report templates plus any overrides, which
// are keyed by action name (e.g. "move").
func NewRenderer(width int, overrides map[string]string) (*Renderer, error) {
	tmpl, err := template.New("reports").Funcs(templateFuncs).Parse(reportTemplates)
	if err != nil {
		return nil, fmt.Errorf("parsing report templates: %w", err)
	}
	for name, text := range overrides {
		if tmpl.Lookup(name) == nil {
			return nil, fmt.Errorf("no report template named %q", name)
		}
		if _, err := tmpl.New(name).Parse(text); err != nil {
			return nil, fmt.Errorf("parsing template %q: %w", name, err)
		}
	}
	return &Renderer{tmpl: tmpl, width: width}, nil
}

// Report renders the outcome of one action.
func (r *Renderer) Report(rep *session.Report) (string, error) {
	name := rep.Action.String()
	if r.tmpl.Lookup(name) == nil {
		return "", fmt.Errorf("no report template for %s", name)
	}

	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, rep); err != nil {
		return "", fmt.Errorf("rendering %s: %w", name, err)
	}
	return Wrap(strings.TrimSpace(buf.String()), r.width), nil
}

// Prompt is shown before every command.
func (r *Renderer) Prompt(active game.CreatureView, ok bool) string {
	if !ok {
		return "[game over] > "
	}
	return fmt.Sprintf("[%s %d/%d] > ", active.Name, active.Energy, active.MaxEnergy)
}

// Items renders a numbered list for picking one item.
func (r *Renderer) Items(items []game.ItemView) string {
	lines := make([]string, 0, len(items))
	for i, it := range items {
		lines = append(lines, fmt.Sprintf("%d) %s", i+1, it.Name))
	}
	return strings.Join(lines, "\n")
}

const reportTemplates = `
{{- define "location" -}}
You are at {{.Name}}{{with .Description}}, {{.}}{{end}}.
{{- if .Doors}}
Doors: {{range $i, $d := .Doors}}{{if $i}}, {{end}}{{title (print $d.Direction)}} to {{$d.Location}}{{end}}.
{{- else}}
There are no doors.
{{- end}}
{{- if .Creatures}}
Creatures here: {{range $i, $c := .Creatures}}{{if $i}}, {{end}}{{$c.Name}}{{end}}.
{{- end}}
{{- if .Items}}
Items here: {{range $i, $it := .Items}}{{if $i}}, {{end}}{{$it.Name}}{{end}}.
{{- end}}
{{- end}}

{{- define "inventory" -}}
{{- if .}}You are carrying:{{range $i, $it := .}}
{{add $i 1}}) {{$it.Name}}{{with $it.Description}}: {{.}}{{end}}{{end}}
{{- else}}You are carrying nothing.{{end}}
{{- end}}

{{- define "bench" -}}
{{- if .}}Bench:{{range $i, $c := .}}
{{add $i 1}}) {{$c.Name}} ({{$c.Energy}}/{{$c.MaxEnergy}}){{end}}
{{- else}}Your bench is empty.{{end}}
{{- end}}

{{- define "result" -}}
{{- if eq .String "win"}}you win{{else if eq .String "loss"}}you lose{{else}}draw{{end}}
{{- end}}

{{- define "inspect" -}}
{{- with .Creature}}Hi player, my name is {{.Name}}. I am {{.Description}}. My energy level is {{.Energy}}/{{.MaxEnergy}}. What can I do to help you?
{{- else}}You have no pymon left.{{end}}
{{- with .Location}}
{{template "location" .}}{{end}}
{{- end}}

{{- define "inspect_location" -}}
{{template "location" .Location}}
{{- end}}

{{- define "move" -}}
You travelled {{.Moved}}.
{{template "location" .Location}}
{{- end}}

{{- define "pick_item" -}}
You picked up the {{.Item.Name}}.
{{- end}}

{{- define "use_item" -}}
{{- if eq .Effect.String "restore"}}{{.Creature.Name}} ate the {{.Item.Name}} and now has {{.Creature.Energy}}/{{.Creature.MaxEnergy}} energy.
{{- else}}{{.Creature.Name}} used the {{.Item.Name}}.{{end}}
{{- end}}

{{- define "view_inventory" -}}
{{template "inventory" .Inventory}}
{{- end}}

{{- define "challenge" -}}
{{- with .Duel -}}
{{.Challenger}} challenges {{.Opponent}}!
{{- range .Rounds}}
Round {{.Number}}: {{.Player}} against {{.Opponent}}, {{template "result" .Result}}.
{{- else}}
{{.Challenger}} is too tired to play a single round.
{{- end}}
{{- if eq .Outcome.String "win"}}
You won the encounter {{.Wins}} to {{.Losses}}!
{{- else if eq .Outcome.String "loss"}}
You lost the encounter {{.Wins}} to {{.Losses}}.
{{- else}}
The encounter is a draw.
{{- end}}
{{- end}}
{{- with .Captured}}
{{.}} has been captured and joins your bench.{{end}}
{{- with .Released}}
{{.}} ran off to {{$.ReleasedTo}}.{{end}}
{{- with .Promoted}}
{{.}} steps up as your new pymon.{{end}}
{{- if .GameOver}}
You have no pymon left. Game over.{{end}}
{{- end}}

{{- define "show_stats" -}}
{{- if .History}}Battle history:{{range $i, $r := .History}}
{{add $i 1}}) {{date "2006-01-02 15:04" $r.Time}} against {{$r.Opponent}}: W{{$r.Wins}} D{{$r.Draws}} L{{$r.Losses}}, {{$r.Outcome}}{{end}}
{{- else}}No battles yet.{{end}}
{{- with .Totals}}
Total: {{.Battles}} battles, W{{.Wins}} D{{.Draws}} L{{.Losses}}{{end}}
{{- end}}

{{- define "swap_bench" -}}
{{.Benched}} goes to the bench and {{.Creature.Name}} is now your pymon.
{{template "bench" .Bench}}
{{- end}}

{{- define "scout" -}}
{{- range $i, $s := .Scouted}}{{if $i}}
{{end}}Through the {{$s.Direction}} door you see {{$s.Location.Name}}
{{- with $s.Location.Creatures}} where {{range $j, $c := .}}{{if $j}}, {{end}}{{$c.Name}}{{end}} waits{{end}}.
{{- else}}There is nothing to see.{{end}}
{{- end}}

{{- define "exit" -}}
Goodbye!
{{- end}}
`
