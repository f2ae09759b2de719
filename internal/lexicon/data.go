package lexicon

// Static vocabulary tables. Slices keep declaration order: when several
// entries could match the same substring, the earliest-declared one wins.

var intentEntries = []Entry{
	{
		StandardValue: "menu",
		Primary:       []string{"i would like to", "i want to", "i need to", "i wish to", "i intend to"},
	},
	{
		StandardValue: "help",
		Primary: []string{
			"how do i", "does the system support", "is there capability to", "where can i",
			"what's the best way to", "what's required to", "what's involved in",
			"could you show me", "can you guide me on", "can you explain how to",
		},
	},
}

var actionEntries = []Entry{
	{
		StandardValue: "create",
		Primary:       []string{"create", "add"},
		Synonyms:      []string{"enter", "input", "register", "insert", "submit", "append", "post", "start"},
	},
	{
		StandardValue: "modify",
		Primary:       []string{"modify", "update"},
		Synonyms:      []string{"edit", "revise", "alter", "amend", "adjust", "correct", "change", "fix", "refine"},
	},
	{
		StandardValue: "search",
		Primary:       []string{"search for", "search"},
		Synonyms: []string{
			"find", "locate", "view", "browse", "display", "show", "list", "check",
			"inspect", "open", "access", "retrieve", "get", "load", "query", "fetch",
		},
	},
	{
		StandardValue: "delete",
		Primary:       []string{"delete record", "delete"},
		Synonyms: []string{
			"remove", "discard", "erase", "purge", "destroy", "eliminate", "clear",
			"drop", "cancel", "void", "revoke", "obliterate",
		},
	},
}

var processEntries = []Entry{
	{StandardValue: "objective", Primary: []string{"objective"}, Synonyms: []string{"goal"}},
	{StandardValue: "key result", Primary: []string{"key result"}, Synonyms: []string{"kpi"}},
	{StandardValue: "initiative", Primary: []string{"initiative"}, Synonyms: []string{"action item"}},
	{StandardValue: "review meeting", Primary: []string{"review meeting"}, Synonyms: []string{"meeting"}},
	{StandardValue: "key result checkin", Primary: []string{"key result checkin"}, Synonyms: []string{"checkin"}},
}

var filterNameEntries = []Entry{
	{StandardValue: "due", Primary: []string{"due", "deadline"}, Synonyms: []string{"due date"}},
	{StandardValue: "priority", Primary: []string{"priority"}, Synonyms: []string{"importance"}},
	{StandardValue: "status", Primary: []string{"status"}, Synonyms: []string{"state"}},
	{StandardValue: "assigned", Primary: []string{"assigned", "assigned to"}, Synonyms: []string{"owner"}},
	{StandardValue: "quarter", Primary: []string{"quarter", "q"}},
}

var filterOperatorEntries = []Entry{
	{StandardValue: "equal to", Primary: []string{"=", "equals", "is"}, Synonyms: []string{"equal to"}},
	{StandardValue: "greater than", Primary: []string{">", "greater than"}, Synonyms: []string{"more than"}},
	{StandardValue: "less than", Primary: []string{"<", "less than"}, Synonyms: []string{"below"}},
}

// Filter value entries group terms by value kind; the matched surface term
// itself is the resolved slot value, not the group name.
var filterValueEntries = []Entry{
	{StandardValue: "date", Primary: []string{"today", "tomorrow", "yesterday"}},
	{StandardValue: "priority", Primary: []string{"high", "low", "medium"}},
	{StandardValue: "status", Primary: []string{"pending", "completed"}, Synonyms: []string{"done"}},
	{StandardValue: "quarter", Primary: []string{
		"q1", "q2", "q3", "q4",
		"quarter 1", "quarter 2", "quarter 3", "quarter 4",
		"1", "2", "3", "4",
	}},
}

var intentPhrases = []PhraseEntry{
	{StandardValue: "menu", Phrases: []string{
		"i'm looking to", "i'm trying to", "i am preparing to", "i am planning to",
		"i am aiming to", "i am hoping to", "i feel ready to",
	}},
	{StandardValue: "help", Phrases: []string{
		"how to", "does it have", "show me how to", "what's the way to",
		"what steps do i take to", "how may i", "how can i",
		"could you explain how to", "can you help me", "i'm looking to understand how to",
	}},
}

var actionPhrases = []PhraseEntry{
	{StandardValue: "create", Phrases: []string{
		"add a record", "enter a new record", "input new data", "make a new record",
		"make an entry", "open a new record", "save new record", "submit new record",
		"insert a record", "append a record",
	}},
	{StandardValue: "modify", Phrases: []string{
		"edit a record", "update a record", "change details", "revise record",
		"alter record", "amend details", "adjust details", "modify record",
		"correct record", "make changes", "make updates",
	}},
	{StandardValue: "search", Phrases: []string{
		"search records", "look up data", "find records", "view records", "open records",
		"show records", "show data", "display records", "browse records", "list records",
		"check records", "inspect records", "access records", "retrieve records",
		"pull records", "load records", "query records", "fetch records",
	}},
	{StandardValue: "delete", Phrases: []string{
		"delete record", "delete entry", "remove record", "remove entry", "discard record",
		"discard entry", "erase record", "purge record", "purge entry", "clear entry",
		"drop entry", "cancel entry", "terminate entry", "void entry", "revoke entry",
	}},
}

var processPhrases = []PhraseEntry{
	{StandardValue: "objective", Phrases: []string{"target to achieve", "plan for", "aim to complete"}},
	{StandardValue: "key result", Phrases: []string{"performance metric", "result to track", "key performance indicator"}},
	{StandardValue: "initiative", Phrases: []string{"project to start", "task to undertake", "action to take"}},
	{StandardValue: "review meeting", Phrases: []string{"team meeting", "discussion session", "review session"}},
	{StandardValue: "key result checkin", Phrases: []string{"progress check", "status update", "check-in meeting"}},
}

var filterNamePhrases = []PhraseEntry{
	{StandardValue: "due", Phrases: []string{"when it is due", "due by", "completion date"}},
	{StandardValue: "priority", Phrases: []string{"level of urgency", "importance level", "priority of"}},
	{StandardValue: "status", Phrases: []string{"current state", "progress status", "condition of"}},
	{StandardValue: "assigned", Phrases: []string{"who is responsible", "assigned person", "task owner"}},
}

var filterOperatorPhrases = []PhraseEntry{
	{StandardValue: "equal to", Phrases: []string{"same as", "matches", "is exactly"}},
	{StandardValue: "greater than", Phrases: []string{"exceeds", "higher than", "above"}},
	{StandardValue: "less than", Phrases: []string{"under", "lower than", "lesser than"}},
}

var filterValuePhrases = []PhraseEntry{
	{StandardValue: "date", Phrases: []string{"this week", "next week", "last week"}},
	{StandardValue: "priority", Phrases: []string{"urgent", "normal", "minor"}},
	{StandardValue: "status", Phrases: []string{"in progress", "open", "closed"}},
}

// Reference pairs per gold standard: two alternate phrasings plus the
// offline-computed gold-to-reference similarity scores. The scores are
// constants measured against the indexed embedding model, never
// recomputed from the live sentence.
var referencePairs = map[Category]map[string]ReferencePair{
	CategoryIntent: {
		"i want to": {Ref1Phrase: "i need to", Ref2Phrase: "i would like to", GoldToRef1: 0.7774, GoldToRef2: 0.7732},
		"how do i":  {Ref1Phrase: "how can i", Ref2Phrase: "show me how", GoldToRef1: 0.9350, GoldToRef2: 0.5516},
	},
	CategoryAction: {
		"create": {Ref1Phrase: "add", Ref2Phrase: "generate", GoldToRef1: 0.3091, GoldToRef2: 0.7006},
		"modify": {Ref1Phrase: "update", Ref2Phrase: "change", GoldToRef1: 0.6299, GoldToRef2: 0.7718},
		"search": {Ref1Phrase: "find", Ref2Phrase: "locate", GoldToRef1: 0.6734, GoldToRef2: 0.6685},
		"delete": {Ref1Phrase: "remove", Ref2Phrase: "erase", GoldToRef1: 0.7576, GoldToRef2: 0.5458},
	},
	CategoryProcess: {
		"objective":          {Ref1Phrase: "goal", Ref2Phrase: "target", GoldToRef1: 0.4860, GoldToRef2: 0.4323},
		"key result":         {Ref1Phrase: "kpi", Ref2Phrase: "metric", GoldToRef1: 0.2255, GoldToRef2: 0.2717},
		"initiative":         {Ref1Phrase: "action item", Ref2Phrase: "task", GoldToRef1: 0.3236, GoldToRef2: 0.4775},
		"review meeting":     {Ref1Phrase: "meeting", Ref2Phrase: "session", GoldToRef1: 0.6623, GoldToRef2: 0.2810},
		"key result checkin": {Ref1Phrase: "checkin", Ref2Phrase: "intent", GoldToRef1: 0.4353, GoldToRef2: 0.1245},
	},
	CategoryFilterName: {
		"due":      {Ref1Phrase: "deadline", Ref2Phrase: "timing", GoldToRef1: 0.4843, GoldToRef2: 0.3741},
		"priority": {Ref1Phrase: "importance", Ref2Phrase: "ranking", GoldToRef1: 0.6234, GoldToRef2: 0.4828},
		"status":   {Ref1Phrase: "state", Ref2Phrase: "progress", GoldToRef1: 0.4275, GoldToRef2: 0.6076},
		"assigned": {Ref1Phrase: "owner", Ref2Phrase: "responsible", GoldToRef1: 0.4233, GoldToRef2: 0.3655},
		"quarter":  {Ref1Phrase: "q", Ref2Phrase: "season", GoldToRef1: 0.3942, GoldToRef2: 0.3058},
	},
	CategoryFilterOperator: {
		"equal to":     {Ref1Phrase: "=", Ref2Phrase: "=", GoldToRef1: 0.4684, GoldToRef2: 0.4684},
		"greater than": {Ref1Phrase: ">", Ref2Phrase: ">", GoldToRef1: 0.4281, GoldToRef2: 0.4281},
		"less than":    {Ref1Phrase: "<", Ref2Phrase: "<", GoldToRef1: 0.3261, GoldToRef2: 0.3261},
	},
	CategoryFilterValue: {
		"today":   {Ref1Phrase: "tomorrow", Ref2Phrase: "yesterday", GoldToRef1: 0.7743, GoldToRef2: 0.8571},
		"high":    {Ref1Phrase: "medium", Ref2Phrase: "low", GoldToRef1: 0.3951, GoldToRef2: 0.7103},
		"pending": {Ref1Phrase: "completed", Ref2Phrase: "finished", GoldToRef1: 0.5588, GoldToRef2: 0.5231},
		"q1":      {Ref1Phrase: "quarter 1", Ref2Phrase: "quarter 2", GoldToRef1: 0.3209, GoldToRef2: 0.3022},
	},
}

// Intent gold phrases mapped to the intent category they imply
var intentPhraseCategories = map[string]string{
	"i want to":          "menu",
	"i need to":          "menu",
	"i would like to":    "menu",
	"i wish to":          "menu",
	"i intend to":        "menu",
	"how do i":           "help",
	"how can i":          "help",
	"show me how":        "help",
	"can you guide me":   "help",
	"what is the way to": "help",
}

// Help documentation per process
var helpDocuments = map[string]string{
	"objective":          "/docs/objective-help.html",
	"key result":         "/docs/key-result-help.html",
	"initiative":         "/docs/initiative-help.html",
	"review meeting":     "/docs/review-meeting-help.html",
	"key result checkin": "/docs/key-result-checkin-help.html",
}

// Rephrasing guidance keyed by detected intent category
var suggestions = map[string]Suggestion{
	"menu": {
		Action:  "Specify an action (create, modify, search or delete) and a record type.",
		Example: "I want to create an objective",
	},
	"help": {
		Action:  "Ask about a specific process, such as an objective or key result.",
		Example: "How do I create a key result?",
	},
	"unknown": {
		Action:  "Start your request with 'I want to ...' or 'How do I ...'.",
		Example: "I want to search objectives where priority = high",
	},
}

// Surface verbs scanned during slot text extraction
var actionVerbs = []string{
	"create", "modify", "update", "search", "delete",
	"add", "remove", "find", "generate", "change", "locate", "erase",
}

// Words that introduce a filter clause
var filterKeywords = []string{"with", "where", "having", "for"}
