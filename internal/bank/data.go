package bank

import "clarion/internal/domain"

func q(id string, cat domain.Category, text string, options [4]string, correct int) domain.Question {
	return domain.Question{
		ID:           id,
		Category:     cat,
		Text:         text,
		Options:      options[:],
		CorrectIndex: correct,
	}
}

// catalogData is the baked-in fallback catalog. Items are deliberately
// simple enough to solve half-awake.
var catalogData = []domain.Question{
	q("math-001", domain.CategoryMath, "What is 7 + 8?", [4]string{"13", "14", "15", "16"}, 2),
	q("math-002", domain.CategoryMath, "What is 12 - 5?", [4]string{"6", "7", "8", "9"}, 1),
	q("math-003", domain.CategoryMath, "What is 6 x 3?", [4]string{"15", "18", "21", "24"}, 1),
	q("math-004", domain.CategoryMath, "What is 20 / 4?", [4]string{"4", "5", "6", "7"}, 1),
	q("math-005", domain.CategoryMath, "What is 9 + 6?", [4]string{"13", "14", "15", "16"}, 2),
	q("math-006", domain.CategoryMath, "What is 15 - 8?", [4]string{"5", "6", "7", "8"}, 2),
	q("math-007", domain.CategoryMath, "What is 4 x 5?", [4]string{"18", "20", "22", "24"}, 1),
	q("math-008", domain.CategoryMath, "What is 18 / 3?", [4]string{"5", "6", "7", "8"}, 1),
	q("math-009", domain.CategoryMath, "What is 11 + 9?", [4]string{"18", "19", "20", "21"}, 2),
	q("math-010", domain.CategoryMath, "What is 16 - 7?", [4]string{"7", "8", "9", "10"}, 2),
	q("math-011", domain.CategoryMath, "What is 7 x 2?", [4]string{"12", "13", "14", "15"}, 2),
	q("math-012", domain.CategoryMath, "What is 24 / 6?", [4]string{"3", "4", "5", "6"}, 1),
	q("math-013", domain.CategoryMath, "What is 8 + 7?", [4]string{"13", "14", "15", "16"}, 2),
	q("math-014", domain.CategoryMath, "What is 14 - 6?", [4]string{"6", "7", "8", "9"}, 2),
	q("math-015", domain.CategoryMath, "What is 5 x 4?", [4]string{"18", "19", "20", "21"}, 2),
	q("math-016", domain.CategoryMath, "What is 15 / 3?", [4]string{"4", "5", "6", "7"}, 1),
	q("math-017", domain.CategoryMath, "What is 6 + 9?", [4]string{"13", "14", "15", "16"}, 2),
	q("math-018", domain.CategoryMath, "What is 17 - 9?", [4]string{"6", "7", "8", "9"}, 2),
	q("math-019", domain.CategoryMath, "What is 3 x 6?", [4]string{"15", "16", "17", "18"}, 3),
	q("math-020", domain.CategoryMath, "What is 12 / 4?", [4]string{"2", "3", "4", "5"}, 1),

	q("patterns-001", domain.CategoryPatterns, "2, 4, 6, 8, ?", [4]string{"9", "10", "11", "12"}, 1),
	q("patterns-002", domain.CategoryPatterns, "5, 10, 15, 20, ?", [4]string{"22", "24", "25", "30"}, 2),
	q("patterns-003", domain.CategoryPatterns, "1, 3, 5, 7, ?", [4]string{"8", "9", "10", "11"}, 1),
	q("patterns-004", domain.CategoryPatterns, "3, 6, 9, 12, ?", [4]string{"13", "14", "15", "16"}, 2),
	q("patterns-005", domain.CategoryPatterns, "10, 20, 30, 40, ?", [4]string{"45", "50", "55", "60"}, 1),
	q("patterns-006", domain.CategoryPatterns, "4, 8, 12, 16, ?", [4]string{"18", "20", "22", "24"}, 1),
	q("patterns-007", domain.CategoryPatterns, "1, 2, 4, 8, ?", [4]string{"10", "12", "14", "16"}, 3),
	q("patterns-008", domain.CategoryPatterns, "7, 14, 21, 28, ?", [4]string{"32", "35", "38", "42"}, 1),
	q("patterns-009", domain.CategoryPatterns, "2, 5, 8, 11, ?", [4]string{"12", "13", "14", "15"}, 2),
	q("patterns-010", domain.CategoryPatterns, "20, 18, 16, 14, ?", [4]string{"10", "11", "12", "13"}, 2),
	q("patterns-011", domain.CategoryPatterns, "1, 4, 7, 10, ?", [4]string{"11", "12", "13", "14"}, 2),
	q("patterns-012", domain.CategoryPatterns, "6, 12, 18, 24, ?", [4]string{"28", "30", "32", "34"}, 1),
	q("patterns-013", domain.CategoryPatterns, "15, 12, 9, 6, ?", [4]string{"2", "3", "4", "5"}, 1),
	q("patterns-014", domain.CategoryPatterns, "2, 4, 8, 16, ?", [4]string{"24", "28", "30", "32"}, 3),
	q("patterns-015", domain.CategoryPatterns, "9, 18, 27, 36, ?", [4]string{"42", "45", "48", "50"}, 1),
	q("patterns-016", domain.CategoryPatterns, "5, 7, 9, 11, ?", [4]string{"12", "13", "14", "15"}, 1),
	q("patterns-017", domain.CategoryPatterns, "25, 20, 15, 10, ?", [4]string{"4", "5", "6", "7"}, 1),
	q("patterns-018", domain.CategoryPatterns, "1, 2, 3, 5, 8, ?", [4]string{"10", "11", "12", "13"}, 3),
	q("patterns-019", domain.CategoryPatterns, "1, 4, 9, 16, ?", [4]string{"20", "23", "25", "27"}, 2),
	q("patterns-020", domain.CategoryPatterns, "30, 25, 20, 15, ?", [4]string{"8", "9", "10", "12"}, 2),

	q("general-001", domain.CategoryGeneral, "How many days are in a week?", [4]string{"5", "6", "7", "8"}, 2),
	q("general-002", domain.CategoryGeneral, "What color is the sky on a clear day?", [4]string{"Green", "Blue", "Red", "Yellow"}, 1),
	q("general-003", domain.CategoryGeneral, "Which planet do we live on?", [4]string{"Mars", "Venus", "Earth", "Jupiter"}, 2),
	q("general-004", domain.CategoryGeneral, "How many legs does a spider have?", [4]string{"4", "6", "8", "10"}, 2),
	q("general-005", domain.CategoryGeneral, "What is frozen water called?", [4]string{"Steam", "Ice", "Rain", "Fog"}, 1),
	q("general-006", domain.CategoryGeneral, "How many months are in a year?", [4]string{"10", "11", "12", "13"}, 2),
	q("general-007", domain.CategoryGeneral, "Which animal is known as man's best friend?", [4]string{"Cat", "Dog", "Horse", "Bird"}, 1),
	q("general-008", domain.CategoryGeneral, "What is the largest ocean?", [4]string{"Atlantic", "Indian", "Arctic", "Pacific"}, 3),
	q("general-009", domain.CategoryGeneral, "How many continents are there?", [4]string{"5", "6", "7", "8"}, 2),
	q("general-010", domain.CategoryGeneral, "What do bees make?", [4]string{"Milk", "Honey", "Silk", "Butter"}, 1),
	q("general-011", domain.CategoryGeneral, "Which season comes after winter?", [4]string{"Summer", "Autumn", "Spring", "Monsoon"}, 2),
	q("general-012", domain.CategoryGeneral, "How many hours are in a day?", [4]string{"12", "20", "24", "36"}, 2),
	q("general-013", domain.CategoryGeneral, "What is the capital of France?", [4]string{"London", "Berlin", "Madrid", "Paris"}, 3),
	q("general-014", domain.CategoryGeneral, "Which is the closest star to Earth?", [4]string{"The Moon", "The Sun", "Mars", "Polaris"}, 1),
	q("general-015", domain.CategoryGeneral, "What gas do humans breathe in to live?", [4]string{"Oxygen", "Helium", "Hydrogen", "Carbon dioxide"}, 0),
	q("general-016", domain.CategoryGeneral, "How many sides does a triangle have?", [4]string{"2", "3", "4", "5"}, 1),
	q("general-017", domain.CategoryGeneral, "Which animal says 'moo'?", [4]string{"Sheep", "Pig", "Cow", "Duck"}, 2),
	q("general-018", domain.CategoryGeneral, "What do you call a baby dog?", [4]string{"Kitten", "Cub", "Puppy", "Foal"}, 2),
	q("general-019", domain.CategoryGeneral, "Which direction does the sun rise?", [4]string{"North", "South", "East", "West"}, 2),
	q("general-020", domain.CategoryGeneral, "How many minutes are in an hour?", [4]string{"30", "45", "60", "90"}, 2),

	q("logic-001", domain.CategoryLogic, "If today is Monday, what day is tomorrow?", [4]string{"Sunday", "Tuesday", "Wednesday", "Friday"}, 1),
	q("logic-002", domain.CategoryLogic, "Tom is taller than Sam. Sam is taller than Max. Who is shortest?", [4]string{"Tom", "Sam", "Max", "Cannot tell"}, 2),
	q("logic-003", domain.CategoryLogic, "Which of these is not a fruit?", [4]string{"Apple", "Carrot", "Banana", "Grape"}, 1),
	q("logic-004", domain.CategoryLogic, "A farmer has 5 sheep and buys 3 more. How many sheep?", [4]string{"7", "8", "9", "10"}, 1),
	q("logic-005", domain.CategoryLogic, "Which one does not belong: dog, cat, sparrow, cow?", [4]string{"Dog", "Cat", "Sparrow", "Cow"}, 2),
	q("logic-006", domain.CategoryLogic, "If all roses are flowers, is a rose a flower?", [4]string{"Yes", "No", "Sometimes", "Never"}, 0),
	q("logic-007", domain.CategoryLogic, "What comes next: morning, afternoon, evening, ?", [4]string{"Noon", "Night", "Dawn", "Midday"}, 1),
	q("logic-008", domain.CategoryLogic, "A week has 7 days. How many days in 2 weeks?", [4]string{"12", "13", "14", "15"}, 2),
	q("logic-009", domain.CategoryLogic, "Which is heavier: a kilogram of rocks or a kilogram of feathers?", [4]string{"Rocks", "Feathers", "Equal", "Cannot tell"}, 2),
	q("logic-010", domain.CategoryLogic, "If you face north and turn around, which way do you face?", [4]string{"East", "West", "North", "South"}, 3),
	q("logic-011", domain.CategoryLogic, "Anna is older than Ben. Ben is older than Cara. Who is oldest?", [4]string{"Anna", "Ben", "Cara", "Cannot tell"}, 0),
	q("logic-012", domain.CategoryLogic, "Which of these can fly?", [4]string{"Penguin", "Ostrich", "Eagle", "Chicken"}, 2),
	q("logic-013", domain.CategoryLogic, "Two apples plus two apples makes how many apples?", [4]string{"2", "3", "4", "5"}, 2),
	q("logic-014", domain.CategoryLogic, "If yesterday was Friday, what is today?", [4]string{"Thursday", "Saturday", "Sunday", "Monday"}, 1),
	q("logic-015", domain.CategoryLogic, "Which month comes right before June?", [4]string{"April", "May", "July", "August"}, 1),
	q("logic-016", domain.CategoryLogic, "A clock shows 3:00. How many hours until 6:00?", [4]string{"2", "3", "4", "5"}, 1),
	q("logic-017", domain.CategoryLogic, "Which of these is the odd one out: red, blue, circle, green?", [4]string{"Red", "Blue", "Circle", "Green"}, 2),
	q("logic-018", domain.CategoryLogic, "If a train leaves at 9:00 and the trip takes 1 hour, when does it arrive?", [4]string{"9:30", "10:00", "10:30", "11:00"}, 1),
	q("logic-019", domain.CategoryLogic, "What has to be broken before you can use it?", [4]string{"A cup", "An egg", "A door", "A chair"}, 1),
	q("logic-020", domain.CategoryLogic, "Five birds sit on a wire and two fly away. How many remain?", [4]string{"2", "3", "4", "5"}, 1),
}
