package studyplan

import "github.com/verte-zerg/studyflow/internal/model"

var defaultPlan = model.StudyPlan{
	Topic:   "Sample Content",
	Summary: "This is a generated summary showing how the tool works. It takes a complex topic and breaks it down into manageable parts so it is easier to learn.",
	KeyConcepts: []string{
		"This is a generated study plan.",
		"The generator picks out the most important points of a topic.",
		"It then builds exercises to help you practice.",
		"You can ask for any topic you need to study.",
	},
	Schedule: []model.ScheduleItem{
		{Day: "Day 1", Task: "Review the summary and the key concepts."},
		{Day: "Day 2", Task: "Watch the recommended videos and take notes."},
		{Day: "Day 3", Task: "Solve the practice exercises and review."},
	},
	Videos: []model.Link{
		{Title: "How to Study Effectively", URL: "https://www.youtube.com/watch?v=vs2p6hG5TqY"},
	},
	Exercises: []model.Exercise{
		{
			Question: "What is the purpose of this feature?",
			Answer:   "To show how a study plan can be structured, presenting key concepts and practice exercises that reinforce what you learn.",
		},
	},
	Tips: []string{
		"Use the Pomodoro technique to keep your focus.",
		"Relate new concepts to things you already know.",
	},
	FunFacts: []string{
		"Your brain builds new connections every time you learn something new.",
	},
}

var peruPlan = model.StudyPlan{
	Topic:   "History of Peru (Pre-Inca and Inca Eras)",
	Summary: "A tour of the fascinating cultures that lived in ancient Peru before the Spanish arrived, ending with the great Inca Empire, the largest in pre-Columbian America.",
	KeyConcepts: []string{
		"Horizons and Intermediate periods: the key periodization (Chavín, Moche, Nazca, Wari, Chimú).",
		"Cultural development: advances in pottery, textiles, metallurgy and agriculture.",
		"The Tahuantinsuyo: origin, social organization (Ayllu, Panaca), the road network (Qhapaq Ñan) and the accounting system (Quipus).",
		"Andean worldview: duality, reciprocity (Ayni, Minka) and worship of nature (Inti, Pachamama).",
		"Fall of the Empire: the civil war between Huáscar and Atahualpa and the arrival of the Spanish conquerors.",
	},
	Schedule: []model.ScheduleItem{
		{Day: "Day 1", Task: "Study the pre-Inca cultures of the Early and Middle Horizons (Chavín, Nazca, Moche)."},
		{Day: "Day 2", Task: "Focus on the great pre-Inca empires (Wari, Chimú) and the origin and expansion of the Tahuantinsuyo."},
		{Day: "Day 3", Task: "Analyze the social and economic organization and the fall of the Inca Empire."},
	},
	Videos: []model.Link{
		{Title: "History of Peru (summary)", URL: "https://www.youtube.com/watch?v=t8H9bHk4_Sg"},
		{Title: "The Inca Empire", URL: "https://www.youtube.com/watch?v=i_S0r_yT9yA"},
	},
	ReadingMaterials: []model.Link{
		{Title: "History of Peru - Wikipedia", URL: "https://es.wikipedia.org/wiki/Historia_del_Per%C3%BA"},
		{Title: "Historia Peruana - History portal", URL: "https://historiaperuana.pe/"},
	},
	Exercises: []model.Exercise{
		{
			Question: "What was the Qhapaq Ñan and why did it matter to the Inca Empire?",
			Answer:   "It was the Inca road network connecting the whole Tahuantinsuyo. It was vital for moving troops, relaying messengers (chasquis) and moving goods, which let the empire administer and control its vast territory.",
		},
		{
			Question: "Name a defining feature of Nazca pottery.",
			Answer:   "Nazca pottery is polychrome (up to 11 colors on a single piece) and follows a 'horror vacui' style that leaves no surface undecorated.",
		},
	},
	Tips: []string{
		"Build a visual timeline to place each culture and horizon.",
		"Use maps to follow the geographic expansion of empires such as Wari and the Tahuantinsuyo.",
		"Don't memorize dates, understand processes: why did one culture decline and another rise?",
	},
	FunFacts: []string{
		"The Incas performed complex skull surgery called trepanation, with a surprising survival rate.",
		"The city of Caral in the Supe valley is considered the oldest civilization in the Americas, contemporary with the Egyptian pyramids.",
	},
}

var romanPlan = model.StudyPlan{
	Topic: "Roman Architecture",
	Summary: "Roman architecture is one of the most influential in history, not only for its monumental scale but for how it solved practical and urban problems at large scale. " +
		"The Romans did not just copy the Greeks: they innovated with concrete, the arch and the vault, and created public spaces that still amaze us.\n\n" +
		"This module works like an interactive textbook: each key concept is explained in depth, with examples, links to readings and exercises so you understand rather than memorize.",
	KeyConcepts: []string{
		"Key materials: Roman concrete and fired brick. Roman concrete (opus caementicium) made giant domes and vaults possible. It mixed lime, water, volcanic sand (pozzolana) and stones. Fired brick faced and shaped the walls. Example: the Pantheon in Rome, whose 43-meter dome still stands thanks to this material.",
		"Structural innovations: the arch, the vault and the dome. The round arch spreads weight to the sides, opening large spaces. A barrel vault is a row of arches, and a dome is a vault rotated on its axis. Example: the Colosseum stacks arches to carry several tiers of spectators.",
		"Public building types: basilica (justice and trade), baths (social and sports centers), amphitheater (gladiator shows), aqueducts (carried water for kilometers) and temples (the Pantheon, dedicated to all gods). Look up the Basilica of Maxentius or the Aqueduct of Segovia.",
		"Roman urban planning: cities were laid out on a grid (castrum) with two main streets, the Cardo (N-S) and the Decumanus (E-W), plus forums, baths, theaters and markets. Find the forum and the baths on a map of Pompeii.",
		"Architectural orders: the Romans adapted the Greek orders (Doric, Ionic, Corinthian) and created the Tuscan and the Composite. Each column and capital has its own visual language. Example: every floor of the Colosseum facade uses a different order.",
	},
	Schedule: []model.ScheduleItem{
		{Day: "Day 1", Task: "Read the explanation of materials and sketch the Pantheon. Then watch the recommended video on the Roman Empire."},
		{Day: "Day 2", Task: "Study the structural innovations and draw an arch and a vault. Look up images of aqueducts and baths."},
		{Day: "Day 3", Task: "Analyze urban planning and the architectural orders. Write a summary comparing the Parthenon and the Pantheon."},
	},
	Videos: []model.Link{
		{Title: "The Roman Empire in 10 minutes", URL: "https://www.youtube.com/watch?v=ufEclRGXV6k"},
		{Title: "The Architecture of Ancient Rome", URL: "https://www.youtube.com/watch?v=8s1lR1jCz2g"},
	},
	ReadingMaterials: []model.Link{
		{Title: "Ancient Roman architecture - Wikipedia", URL: "https://es.wikipedia.org/wiki/Arquitectura_de_la_Antigua_Roma"},
		{Title: "10 masterpieces of Roman architecture", URL: "https://www.nationalgeographic.com.es/historia/10-obras-maestras-arquitectura-romana"},
		{Title: "Blog: the legacy of Rome in modern architecture", URL: "https://www.archdaily.mx/mx/899999/el-legado-de-la-arquitectura-romana-en-la-arquitectura-moderna"},
	},
	Exercises: []model.Exercise{
		{
			Question: "Explain in your own words why concrete was so revolutionary for the Romans. Give an example of a building that would not exist without it.",
			Answer:   "Concrete allowed curved forms and giant spaces without intermediate columns. Example: the dome of the Pantheon in Rome.",
		},
		{
			Question: "Sketch a round arch and explain how it distributes weight.",
			Answer:   "The weight is carried sideways and down, which allows large openings in the walls.",
		},
		{
			Question: "What differences do you see between a Greek and a Roman temple? Make a comparison table.",
			Answer:   "The Greek temple is more closed and surrounded by columns; the Roman one opens to the front and usually stands on a podium.",
		},
	},
	Tips: []string{
		"Make mind maps of each building type and its function.",
		"Look for 3D reconstruction videos to picture what the spaces were like.",
		"Don't just memorize: explain each concept to someone else as if you were the teacher.",
	},
	FunFacts: []string{
		"The Pantheon in Rome has the largest unreinforced concrete dome in the world, built almost 2000 years ago.",
		"The Colosseum could be emptied in under 10 minutes thanks to its corridors and stairways (vomitoria).",
		"Some Roman aqueducts are still in use today.",
	},
}
