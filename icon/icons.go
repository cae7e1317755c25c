package icon

// Icon identifies a UI symbol in the global registry.
type Icon int

const (
	Progress Icon = iota + 1
	Success
	Fail
	Play
	Pause
)

// icons is the global registry mapping each Icon to its per-variant representations.
var icons = map[Icon]*iconDef{
	Progress: {
		emoji:   "⏳",
		nerd:    "",
		plain:   "...",
		kaomoji: "(・・?)",
		squares: "◪",
	},
	Success: {
		emoji:   "✅",
		nerd:    "",
		plain:   "ok",
		kaomoji: "(￣ー￣)ｂ",
		squares: "▣",
	},
	Fail: {
		emoji:   "❌",
		nerd:    "",
		plain:   "x",
		kaomoji: "(╥﹏╥)",
		squares: "▨",
	},
	Play: {
		emoji:   "▶️",
		nerd:    "",
		plain:   ">",
		kaomoji: "(ノ≧∀≦)ノ",
		squares: "▶",
	},
	Pause: {
		emoji:   "⏸️",
		nerd:    "",
		plain:   "||",
		kaomoji: "(－ω－) zzZ",
		squares: "▮▮",
	},
}
