package peony

import (
	"fmt"
	"io"
	"os"
)

// globalDebug enables warnings on suspicious trees. Off by default.
var globalDebug bool

// debugOut is where warnings are written.
var debugOut io.Writer = os.Stderr

// SetDebug turns debug warnings on or off.
func SetDebug(enabled bool) {
	globalDebug = enabled
}

// debugCheckTreeDepth warns on stderr if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		_, _ = fmt.Fprintf(debugOut, "[peony] warning: tree depth %d exceeds %d (node %q)\n",
			depth, debugMaxTreeDepth, n.name)
	}
}

// debugCheckChildCount warns on stderr if a node has more than 1000 children.
const debugMaxChildCount = 1000

func debugCheckChildCount(n *Node) {
	if len(n.children) > debugMaxChildCount {
		_, _ = fmt.Fprintf(debugOut, "[peony] warning: node %q has %d children (threshold %d)\n",
			n.name, len(n.children), debugMaxChildCount)
	}
}

func debugMissingRegion(name string) {
	_, _ = fmt.Fprintf(debugOut, "[peony] warning: atlas region %q not found\n", name)
}

func debugImageLoadFailed(path string, err error) {
	_, _ = fmt.Fprintf(debugOut, "[peony] warning: image %q: %v\n", path, err)
}
