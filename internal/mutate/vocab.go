package mutate

// Fantasy-theme vocabulary. Three closed word lists combined by the
// name generator according to the rules in nameGenerator.generateFantasy.
var (
	fantasyPrefixes = []string{
		"Crystal", "Shadow", "Thunder", "Void", "Iron", "Mist", "Star", "Blood", "Frost", "Flame",
		"Obsidian", "Azure", "Crimson", "Verdant", "Golden", "Silver", "Ebon", "Ivory", "Arcane", "Spirit",
		"Soul", "Mind", "Heart", "Bone", "Ash", "Ember", "Storm", "Rain", "Wind", "Sea",
	}

	fantasySuffixes = []string{
		"Blade", "Shield", "Weaver", "Walker", "Caller", "Binder", "Warden", "Seeker", "Breaker", "Singer",
		"Dancer", "Stalker", "Hunter", "Mage", "Knight", "Lord", "King", "Queen", "Prince", "Sage",
		"Guard", "Watcher", "Keeper", "Bringer", "Slayer", "Eater", "Drinker", "Forged", "Born", "Kin",
	}

	fantasyVerbs = []string{
		"invoke", "summon", "banish", "enchant", "forge", "shatter", "weave", "scry", "transmute", "bind",
		"call", "cast", "channel", "conjure", "craft", "create", "curse", "bless", "empower", "imbue",
		"infuse", "kindle", "mending", "purify", "restore", "ward", "seal", "open", "close",
	}
)
