// Package e2e drives a running meetingd server through the host/guest
// lifecycle: register, login, create a meeting, join, leave twice and let
// the host close the meeting.
package e2e
