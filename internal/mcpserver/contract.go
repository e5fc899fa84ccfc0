package mcpserver

// UsageGuide explains the note model to LLM consumers.
const UsageGuide = `# burnote usage

Notes are plain text. Nothing in the content is parsed.

## Private notes

- ` + "`save_note`" + ` with ` + "`share: false`" + ` stores a private note.
- ` + "`list_notes`" + ` returns your private notes as JSON, newest first.
- ` + "`delete_note`" + ` removes a private note by its numeric id. Deleting an id
  that does not exist succeeds and changes nothing.

## Read-once shares

- ` + "`save_note`" + ` with ` + "`share: true`" + ` creates a share and returns its ` + "`public_id`" + `.
  Supply your own ` + "`public_id`" + ` or let the server mint one.
- Anyone holding the public id can read the share exactly once, via
  ` + "`read_share`" + ` or ` + "`GET /api/share/{public_id}`" + `. The first read destroys it;
  later reads report that it was not found.
- Shares never appear in ` + "`list_notes`" + `. Reading a share to check it
  destroys it.

## Summaries

- ` + "`summarize`" + ` returns a short summary of the given text. When no model is
  configured the tool returns "` + "AI summary is currently unavailable" + `".
`
