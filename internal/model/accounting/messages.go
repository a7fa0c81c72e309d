package accounting

const (
	registeredMessage = "Registered! You can log in now"
	welcomeMessage    = "Login successful! Welcome "
	loggedOutMessage  = "Logged out. See you!"
	savedMessage      = "Saved!"
	updatedMessage    = "Record updated"
	deletedMessage    = "Record deleted"

	badInputMessage    = "Your input looks incorrect"
	notFoundMessage    = "Record does not exist or is not yours"
	nameTakenMessage   = "That account name is already taken"
	loginFailedMessage = "Name or password is incorrect"
	notLoggedInMessage = "You need to log in first"
	troubleMessage     = "Can't do that at the moment. Try later"
)
