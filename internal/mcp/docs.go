package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `courtroom runs the court room escalation game, an event log and saved HTML outputs.

Workflow:
1) start_court_session creates a session and makes it the default for this client.
2) court_state shows tasks, the latest feed messages and the stopwatch.
3) fix_task resolves a task before it escalates. Ignored tasks turn URGENT after the threshold and go to COURT after twice the threshold.
4) close_court_session stops the session's timers.

record_event / recent_events and save_output / list_outputs work without a court session.

Docs:
- courtroom://docs/rules (escalation rules and penalties)
- courtroom://docs/escape (escape room stages)
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "courtroom://docs/rules",
		Name:        "docs_rules",
		Title:       "Court room rules",
		Description: "How tasks escalate from pending to urgent to court, and what each penalty means.",
		Content: `# Court room rules

## Tasks

| Key | Label | Penalty in court |
|---|---|---|
| ` + "`alt`" + ` | Fix alt in img1 | fined for breaking the Disability Act |
| ` + "`validation`" + ` | Fix input validation | fined for breaking the Laws of Tort |
| ` + "`login`" + ` | Fix user login | declared bankruptcy (no one can use your app) |
| ` + "`database`" + ` | Secure the database | fined for breaking the Laws of Tort |

` + "`alt`" + ` and ` + "`validation`" + ` start their clocks when the session opens. The other tasks start when a feed message mentions them.

## Escalation

- The escalation clock ticks every few seconds.
- A task that has been open for the threshold (2 minutes by default) turns **urgent**; the feed shows ` + "`URGENT: {label}`" + `.
- After twice the threshold it goes to **court**; the feed shows ` + "`COURT: You ignored \"{label}\"`" + ` plus the penalty.
- A slow tick can move a task through both steps at once.

## Fixing

- ` + "`fix_task`" + ` marks a task fixed and posts ` + "`Resolved: {label}`" + `.
- Fixing a fixed task changes nothing.
- Court is final: a task in court cannot be fixed.

## Feed

Messages from the boss, family and agile coach arrive every 20 to 30 seconds. The feed keeps the newest 200 messages.
`,
	},
	{
		URI:         "courtroom://docs/escape",
		Name:        "docs_escape",
		Title:       "Escape room stages",
		Description: "The four escape room stages and how a run is saved.",
		Content: `# Escape room stages

1. **FormatFix**: replace the badly formatted snippet with the fixed one.
2. **DebugHunt**: find the bug; completion is a checkbox.
3. **PrintNumbers**: print 0..n for the leading integer of the input. Invalid or negative n prints 0..1000; n above 100000 is rejected.
4. **CSV→JSON**: convert a header line plus rows into a JSON array. Missing cells become empty strings.

Saving a run renders one HTML section per completed stage and stores it as an output titled ` + "`EscapeRun {timestamp}`" + `. Use save_output to store HTML directly.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
