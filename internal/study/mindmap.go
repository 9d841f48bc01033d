package study

import (
	"context"
	"fmt"
	"strings"

	"github.com/abhisek/laban/internal/llm"
)

// MaxMindmapDepth is the deepest level a mindmap is generated to.
const MaxMindmapDepth = 3

// Mindmap builds a mindmap tree rooted at the topic. Depth counts levels
// below the root and is clamped to 1..MaxMindmapDepth (default 2).
func (s *Service) Mindmap(ctx context.Context, in MindmapInput) (*MindmapNode, error) {
	topic, err := s.require("topic", in.Topic)
	if err != nil {
		return nil, err
	}
	in.Topic = topic
	switch {
	case in.Depth <= 0:
		in.Depth = 2
	case in.Depth > MaxMindmapDepth:
		in.Depth = MaxMindmapDepth
	}

	out, err := generate[mindmapOutput](ctx, s, call{
		kind:      KindMindmap,
		system:    mindmapSystemPrompt,
		user:      buildMindmapUserMessage(in),
		schema:    MindmapSchema,
		maxTokens: s.cfg.MaxTokens,
	})
	if err != nil {
		return nil, err
	}

	root := out.tree(in.Topic)
	if len(root.Children) == 0 {
		return nil, fmt.Errorf("%s: %w", KindMindmap, &llm.ErrInvalidResponse{
			Kind: llm.SchemaMismatch,
			Err:  fmt.Errorf("mindmap has no branches"),
		})
	}
	root.prune(in.Depth)
	return &root, nil
}

// tree converts the fixed-depth reply into a MindmapNode tree, dropping
// blank labels.
func (o mindmapOutput) tree(fallback string) MindmapNode {
	root := MindmapNode{Label: strings.TrimSpace(o.Center)}
	if root.Label == "" {
		root.Label = fallback
	}
	for _, br := range o.Branches {
		branch := MindmapNode{Label: strings.TrimSpace(br.Label)}
		if branch.Label == "" {
			continue
		}
		for _, idea := range br.Ideas {
			node := MindmapNode{Label: strings.TrimSpace(idea.Label)}
			if node.Label == "" {
				continue
			}
			for _, d := range idea.Details {
				if d = strings.TrimSpace(d); d != "" {
					node.Children = append(node.Children, MindmapNode{Label: d})
				}
			}
			branch.Children = append(branch.Children, node)
		}
		root.Children = append(root.Children, branch)
	}
	return root
}

// prune cuts the tree below depth levels.
func (n *MindmapNode) prune(depth int) {
	if depth <= 0 {
		n.Children = nil
		return
	}
	for i := range n.Children {
		n.Children[i].prune(depth - 1)
	}
}

// Count returns the number of nodes in the tree, root included.
func (n *MindmapNode) Count() int {
	total := 1
	for i := range n.Children {
		total += n.Children[i].Count()
	}
	return total
}

// Render draws the tree with box-drawing connectors.
func (n *MindmapNode) Render() string {
	var b strings.Builder
	b.WriteString(n.Label)
	b.WriteByte('\n')
	for i := range n.Children {
		n.Children[i].render(&b, "", i == len(n.Children)-1)
	}
	return b.String()
}

func (n *MindmapNode) render(b *strings.Builder, prefix string, last bool) {
	connector, indent := "├── ", "│   "
	if last {
		connector, indent = "└── ", "    "
	}
	b.WriteString(prefix + connector + n.Label + "\n")
	for i := range n.Children {
		n.Children[i].render(b, prefix+indent, i == len(n.Children)-1)
	}
}
