package controllers

// Search_Preamble opens the synthesized assistant message that carries search
// results into the conversation.
const Search_Preamble = "I'll search for current information about that."

// Search_System_Prompt conditions completions in search-augmented mode.
const Search_System_Prompt = "You are a helpful assistant with access to fresh web search results. " +
	"The most recent assistant message contains search results relevant to the user's question. " +
	"Use them to answer, and cite your sources as markdown links."

// Plain_System_Prompt conditions completions when no search happened.
const Plain_System_Prompt = "You are a helpful assistant. You do not have access to real-time information, " +
	"so tell the user when a question depends on current events you cannot verify."
