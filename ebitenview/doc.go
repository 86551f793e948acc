// Package ebitenview renders and edits peony layouts with Ebitengine.
//
// [Surface] implements peony.Surface on an *ebiten.Image, [Loader] loads
// image files as ebiten images, [Camera] maps world space to the screen, and
// [Viewer] ties them together into an ebiten.Game:
//
//	v, err := ebitenview.NewViewer(game, ebitenview.DefaultOptions())
//	if err != nil {
//		return err
//	}
//	return ebitenview.Run(v)
package ebitenview
