package email

const passwordResetBody = `<html><body>
<p>We received a request to reset the password on your account.</p>
<p>Use the following code to choose a new password:</p>
<p><strong>%s</strong></p>
<p>If you did not request this, you can safely ignore this message.</p>
</body></html>`

const emailVerificationBody = `<html><body>
<p>Welcome! Please confirm your email address.</p>
<p>Your confirmation code:</p>
<p><strong>%s</strong></p>
</body></html>`
