package prompt

// MessageTemplate renders a commit message context into conventional
// commit text.
const MessageTemplate = "{{ header }}" +
	"{% if body %}\n\n{{ body }}{% end %}" +
	"{% if trailers %}\n{% for line in trailers %}\n{{ line }}{% end %}{% end %}"

// DefaultTemplate is pre-filled into the editor. Lines starting with '#'
// are stripped before the message is parsed.
const DefaultTemplate = MessageTemplate + `

# Enter a conventional commit message: type(scope)!: description
# Lines starting with '#' are ignored. An empty message aborts the commit.
{% if problems %}#
# Fix the following and save again:
{% for p in problems %}#   {{ p }}
{% end %}{% end %}{% if branch %}#
# On branch {{ branch }}
{% end %}#
# Types:
{% for t in types %}#   {{ t.name }}: {{ t.description }}
{% end %}{% if files %}#
# Changes to be committed:
{% for f in files %}#	{{ f }}
{% end %}{% end %}`
