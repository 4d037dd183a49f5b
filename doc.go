// Package notefield is an infinite, pan- and zoomable note canvas for
// [Ebitengine]. Clicking empty space drops an auto-sizing text box at that
// canvas position; boxes grow with their content, stay put in canvas space
// while the view moves, and vanish when left empty.
//
// # Quick start
//
// [Board] implements [ebiten.Game]:
//
//	board, err := notefield.NewBoard(notefield.Options{})
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer board.Close()
//	ebiten.RunGame(board)
//
// # Coordinates
//
// The canvas origin sits at the viewport center. A [ViewState] holds the
// pan offset (screen pixels) and the scale; [ScreenToCanvas] and
// [CanvasToScreen] convert between the two spaces. Box positions are
// stored in canvas units and never change when the view does.
//
// # Input
//
//   - Wheel: zoom toward the cursor in fixed steps, clamped to
//     [DefaultMinScale]..[DefaultMaxScale].
//   - Space+drag or middle-drag: pan. Middle-drag keeps panning outside
//     the window.
//   - Click on empty canvas: create a box there and focus it.
//   - Ctrl/Cmd+0: return to the origin at 100% when no box is focused.
//   - Esc: leave the focused box.
//   - F3: toggle the debug HUD. F12: save a screenshot.
//
// Input-method composition is supported through Ebitengine's exp/textinput
// session; committed text reaches the registry only when a composition ends.
//
// # Automation
//
// [Board.Inject] and friends queue synthetic events consumed one per frame.
// [LoadScript] builds a [ScriptRunner] from a JSON session script for
// repeatable demos and visual tests. Lifecycle changes can be observed via
// [Board.SetEventSink]; the ecs subpackage forwards them into a [Donburi]
// world.
//
// [Ebitengine]: https://ebitengine.org
// [Donburi]: https://github.com/yohamta/donburi
package notefield
