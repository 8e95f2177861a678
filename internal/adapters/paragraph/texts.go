package paragraph

// texts is the built-in rotation pool. One text is served per UTC day.
var texts = []string{
	"The quick brown fox jumps over the lazy dog while the sun sets behind distant mountains painting the sky in brilliant shades of orange and purple as birds return to their nests for the evening",
	"Technology has transformed the way we communicate with each other across vast distances connecting people from different cultures and backgrounds in ways that were unimaginable just a few decades ago",
	"The ocean waves crashed against the rocky shore as seagulls circled overhead searching for their next meal while children built sandcastles near the water edge under the watchful eyes of their parents",
	"In the heart of the ancient forest tall trees stretched toward the sky their branches intertwined creating a natural canopy that filtered sunlight into dancing patterns on the forest floor below",
	"Learning to type quickly and accurately is a valuable skill in the modern world where most communication happens through keyboards and screens rather than pen and paper",
	"The old library stood at the corner of the street its shelves filled with countless stories waiting to be discovered by curious readers who wandered through its quiet halls",
	"Every morning the baker arrived before dawn to prepare fresh bread and pastries filling the neighborhood with the warm comforting aroma of baked goods that drew customers from miles around",
	"Scientists continue to explore the mysteries of the universe using powerful telescopes and advanced instruments to study distant galaxies and understand the fundamental forces that shape our reality",
	"The mountain climbers checked their equipment one final time before beginning their ascent knowing that preparation and patience would be essential for reaching the summit safely",
	"Music has the remarkable ability to evoke emotions and memories transporting listeners to different times and places through melodies and rhythms that transcend language barriers",
	"The gardener tended to her vegetables with care watering each plant and removing weeds so that by harvest time the garden would provide fresh produce for the entire family",
	"Rain fell steadily throughout the night washing the city streets clean and leaving behind a fresh earthy scent that greeted early commuters as they began their day",
}
