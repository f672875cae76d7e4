package yuletree

// Scene palette. Surfaces pick from these so every backend renders the same
// greeting.
var (
	ColorEmeraldDeep  = RGB(0x043b22) // foliage core
	ColorEmeraldLight = RGB(0x10b966) // foliage glow
	ColorGoldMetallic = RGB(0xffd700) // baubles, star, sparkles
	ColorGoldDark     = RGB(0xedaa00) // warm fill
	ColorRedVelvet    = RGB(0xc91414) // gifts
	ColorWhiteWarm    = RGB(0xfff9e8) // rim highlights
	ColorNightSky     = RGB(0x000502) // background
	ColorTitleGold    = RGB(0xd4af37) // HUD title and button border
	ColorButtonText   = RGB(0xf8e796)
	ColorSubtitleMint = Color{R: 0.43, G: 0.91, B: 0.72, A: 0.9}
)
