package util

import (
	"fmt"
	"math/rand"
)

var adjectives = []string{
	"Bluffing", "Limping", "Raising", "Folding", "Stacked", "Tilted", "Patient", "Lucky",
	"Cagey", "Fearless", "Loose", "Tight", "Grinding", "Slowrolling", "Crafty", "Bold",
	"Quiet", "Wild", "Steady", "Sneaky", "Chipper", "Daring", "Icy", "Smiling",
}

var animals = []string{
	"Shark", "Donkey", "Fox", "Owl", "Walrus", "Otter", "Tiger", "Rhino",
	"Crane", "Badger", "Wolf", "Raccoon", "Heron", "Lynx", "Mongoose", "Panda",
	"Falcon", "Moose", "Gecko", "Marmot", "Pelican", "Stoat", "Ibex", "Puffin",
}

// GetRandomName returns a display name for a guest who didn't pick one
func GetRandomName() string {
	return fmt.Sprintf("%s %s", adjectives[rand.Intn(len(adjectives))], animals[rand.Intn(len(animals))])
}
