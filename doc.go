// Package peony is the scene-graph and geometry engine of a 2D layout editor.
//
// A [Game] holds a tree of [Layout] values; each layout owns a tree of
// [Node] values. Nodes come in four kinds: points, shapes (closed polygons),
// images (rasters loaded from files) and sprites (named atlas regions).
// Every node carries a [Transform] that maps its local space into its
// parent's space.
//
// # Quick start
//
//	game := peony.NewGame()
//	root := game.Layout().Root()
//
//	body := peony.NewShape("body")
//	body.Transform.Translation = peony.Vec2{X: 100, Y: 80}
//	root.AddChild(body)
//
//	if sel, ok := root.Hit(peony.Vec2{X: 164, Y: 80}); ok {
//		fmt.Println(sel.Node.Name(), sel.Vertex) // body 0
//	}
//
// # Scene tree
//
// Sibling names are unique: adding a second child called "arm" names it
// "arm1", a third "arm2". [Node.AddChild] and [Node.MoveTo] reparent,
// refusing cycles. [Node.OnChange] registers listeners that hear every
// change below a node.
//
// # Editing
//
// [Node.Hit] finds the topmost unlocked node under a point and, for shapes,
// the vertex under it. The resulting [Selection] supports dragging, edge
// splitting and vertex removal. Shapes never drop below [MinPoints]
// vertices.
//
// # Documents
//
// [Codec] reads and writes the JSON document format. Image and atlas paths
// are stored relative to the document's directory. Decoding either yields a
// complete tree or a [*DocumentError] naming the malformed field.
//
// # Rendering
//
// [Render] walks a tree and issues drawing commands to a [Surface]. The
// ebitenview package provides a Surface for Ebitengine and an interactive
// viewer.
package peony
