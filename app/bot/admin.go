package bot

import (
	"context"
	"fmt"
	"strings"

	"github.com/Semior001/headlines/pkg/botx"
)

func (c *Ctrl) cacheStats(_ context.Context, req botx.Request) ([]botx.Response, error) {
	sb := &strings.Builder{}

	st := c.lists.Stat()
	_, _ = fmt.Fprintf(sb, "lists: hits: %d, misses: %d, added: %d, evicted: %d, size: %d\n",
		st.Hits, st.Misses, st.Added, st.Evicted, c.lists.Len())

	if c.Reader != nil {
		if st, ok := c.Reader.SummaryCacheStat(); ok {
			_, _ = fmt.Fprintf(sb, "summaries: hits: %d, misses: %d, added: %d, evicted: %d\n",
				st.Hits, st.Misses, st.Added, st.Evicted)
		}
	}

	return []botx.Response{{ChatID: req.Chat.ID, Text: sb.String()}}, nil
}
