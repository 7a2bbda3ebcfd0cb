// Package cli provides the terminal user interface pages for Curatr.
//
// The package uses [Bubbletea] for building interactive terminal UIs and
// [Lipgloss] for styling. All pages follow the standard Bubbletea
// Model-View-Update (MVU) architecture.
//
// # Pages
//
// Two pages are provided:
//   - ModelList: paginated, filtered, sorted table of registry models
//   - ModelDetail: a single model with its versions and edit actions
//
// Pages render controller snapshots; they own no sort or filter state of
// their own. A page subscribes to its controller, forwards snapshots into
// the Bubbletea event loop as messages, and translates key presses into
// controller calls.
//
// [Bubbletea]: https://github.com/charmbracelet/bubbletea
// [Lipgloss]: https://github.com/charmbracelet/lipgloss
package cli
