package catalog

// botNames is the 200-entry display-name pool for newly purchased bots.
var botNames = []string{
	// Agriculture
	"Sprout", "Harvest", "Tiller", "Planter", "Reaper", "Sower", "Grower", "Cultivar", "Farmhand", "Rancher",
	"Meadow", "Barley", "Rye", "Oats", "Buckwheat", "Flax", "Clover", "Alfalfa", "Haystack", "Barnaby",
	"Combine", "Thresher", "Harrow", "Plow", "Scythe", "Hoe", "Rake", "Spade", "Pitchfork", "Trowel",
	"Furrow", "Seedling", "Blossom", "Bloom", "Petal", "Root", "Stem", "Leaf", "Branch", "Twig",
	"Mulch", "Compost", "Humus", "Loam", "Clay", "Silt", "Topsoil", "Bedrock", "Farmstead", "Acreage",
	// Tech
	"Bolt", "Chip", "Circuit", "Widget", "Gadget", "Servo", "Rotor", "Piston", "Gear", "Cog",
	"Binary", "Pixel", "Nano", "Micro", "Macro", "Mega", "Giga", "Tera", "Byte", "Bit",
	"Chrome", "Steel", "Alloy", "Titanium", "Carbon", "Silicon", "Copper", "Bronze", "Platinum", "Silver",
	"Spark", "Volt", "Amp", "Watt", "Ohm", "Tesla", "Farad", "Hertz", "Newton", "Joule",
	"Patch", "Debug", "Cache", "RAM", "ROM", "CPU", "GPU", "USB", "LED", "LCD",
	// Nature
	"Willow", "Oak", "Maple", "Pine", "Cedar", "Birch", "Aspen", "Elm", "Ash", "Poplar",
	"River", "Creek", "Brook", "Stream", "Lake", "Pond", "Marsh", "Swamp", "Delta", "Bay",
	"Boulder", "Pebble", "Stone", "Rock", "Cliff", "Canyon", "Valley", "Hill", "Ridge", "Peak",
	"Breeze", "Gale", "Storm", "Thunder", "Lightning", "Rain", "Snow", "Frost", "Dew", "Mist",
	"Dawn", "Dusk", "Twilight", "Sunset", "Sunrise", "Moon", "Star", "Comet", "Nova", "Solar",
	// Personality
	"Buddy", "Champ", "Scout", "Ace", "Duke", "Chief", "Boss", "Captain", "Major", "Colonel",
	"Lucky", "Happy", "Jolly", "Merry", "Sunny", "Bright", "Cheery", "Peppy", "Zippy", "Snappy",
	"Rusty", "Dusty", "Sparky", "Rocky", "Sandy", "Windy", "Stormy", "Misty", "Foggy", "Cloudy",
	"Max", "Rex", "Tex", "Dex", "Flex", "Vex", "Hex", "Pax", "Jax", "Zax",
	"Otto", "Hugo", "Bruno", "Leo", "Theo", "Milo", "Arlo", "Enzo", "Nico", "Kilo",
}

// RandomName picks a display name using the supplied uniform [0,1) draw.
func RandomName(draw float64) string {
	idx := int(draw * float64(len(botNames)))
	if idx < 0 {
		idx = 0
	}
	if idx >= len(botNames) {
		idx = len(botNames) - 1
	}
	return botNames[idx]
}
