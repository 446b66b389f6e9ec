// Package popup implements the interaction core shared by every floating
// trigger + popup menu in the program.
//
// The package never renders anything. A host (internal/ui) owns layout and
// drawing and feeds the core three things each update:
//   - an element tree (Elements) describing what is on screen this pass,
//     addressed by slash separated paths such as "screen/top/actions/trigger";
//   - pointer and focus events, delivered through a Document whose listeners
//     are acquired with On and released through the returned handle;
//   - key presses, forwarded to Machine.HandleKey while a popup is open.
//
// Pieces, leaves first:
//   - ComputeOffset places the popup relative to its trigger.
//   - IsOutside classifies an event target against the mounted popup root.
//   - EnabledIndices/NextIndex implement roving focus across menu items.
//   - Gate holds back the first render until the trigger exists.
//   - Machine owns the open/closed state and ties the rest together.
//
// Focus is owned by Focus, a small helper hosts delegate to; focusing an
// element dispatches a focus-in Event so open popups can close themselves
// when focus leaves them.
//
// Everything runs on the Bubble Tea update goroutine. Work that must happen
// "after the close has rendered", such as returning focus to the trigger, is
// expressed as a tea.Cmd carrying a FocusReturnMsg that the host routes back
// to Machine.HandleFocusReturn.
package popup
