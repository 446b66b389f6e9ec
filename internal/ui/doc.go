// Package ui contains the Bubble Tea program hosting the overflow menus.
// The Model type focuses on message orchestration, while dedicated helpers
// own layout, input routing, placement and rendering.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages, which are routed
//     through a typed handler registry so each tea.Msg is handled by a focused
//     function (key presses, mouse presses, resizes, deferred focus returns
//     and action results).
//   - Every update ends in finishUpdate: each menu's external open flag is fed
//     to its popup.Machine, then layout rebuilds the element tree and hit map.
//     Layout mounts triggers first and then runs the placement primitive for
//     every popup that should render, which binds the machine's document
//     listeners and moves focus into a freshly opened popup.
//
// Event ordering:
//   - Mouse presses are resolved to element paths through the hit map and
//     dispatched to the shared popup.Document before any trigger or item
//     handling, so outside-click detection always sees the press first.
//   - Key presses go to the machine owning the focused element; keys it does
//     not consume fall through to item activation, type-ahead and finally the
//     host bindings (trigger cycling, help, quit).
//   - Item actions run through the internal/ui/command bus after the trigger
//     has been refocused, using tea.Sequence so the order holds in a real
//     program as well as in the Harness.
package ui
